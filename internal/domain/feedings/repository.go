package feedings

import "context"

type Repository interface {
	Create(ctx context.Context, ev FeedingEvent) error
	// LastByPet devuelve (nil, nil) cuando la mascota no tiene historial:
	// la ausencia es un valor normal acá, no un error.
	LastByPet(ctx context.Context, petID string) (*FeedingEvent, error)
	ListByPet(ctx context.Context, petID string, limit int) ([]FeedingEvent, error)
}

package schedules

import "context"

type Repository interface {
	Create(ctx context.Context, sch Schedule) error
	Update(ctx context.Context, sch Schedule) error
	// GetByID y Update reportan un horario inexistente con un error que
	// satisface errors.Is(err, ErrNotFound).
	GetByID(ctx context.Context, id string) (Schedule, error)
	ListByPet(ctx context.Context, petID string) ([]Schedule, error)
}

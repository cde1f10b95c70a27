package feedings

import "time"

// FeedingEvent es un registro de alimentación ya ocurrida.
type FeedingEvent struct {
	ID     string
	PetID  string
	UserID string

	// FedAt es el instante de la alimentación; RecordedAt cuándo se registró
	// (difieren cuando alguien carga una alimentación vieja a mano).
	FedAt      time.Time
	RecordedAt time.Time

	PortionSize *float64
	Notes       string
}

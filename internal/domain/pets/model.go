package pets

import "time"

// Species define las especies soportadas.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Pet representa una mascota administrada por un hogar. Varios usuarios
// del mismo hogar alimentan a la misma mascota.
type Pet struct {
	ID          string
	HouseholdID string

	Name    string
	Species Species

	// FeedingIntervalHours es el intervalo de respaldo cuando la mascota
	// no tiene ningún horario que resuelva. nil = sin respaldo.
	FeedingIntervalHours *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

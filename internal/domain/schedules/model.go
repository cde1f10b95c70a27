package schedules

import "time"

// Schedule es un horario de alimentación de una mascota. Este core lo trata
// como entrada inmutable: la persistencia vive en un colaborador externo.
type Schedule struct {
	ID    string
	PetID string

	Kind Kind

	// Times aplica cuando Kind == KindFixedTime ("HH:MM", orden libre).
	Times []string
	// IntervalHours aplica cuando Kind == KindInterval.
	IntervalHours float64

	Enabled bool
	// OverrideUntil suprime el horario hasta ese instante (nil = sin override).
	OverrideUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextFeeding es el resultado de una evaluación: efímero, nunca se persiste.
type NextFeeding struct {
	PetID string
	At    time.Time

	// SourceScheduleID queda vacío cuando el instante salió del intervalo
	// de respaldo de la mascota y no de un Schedule.
	SourceScheduleID string

	Overdue bool
}

// activeAt decide si el horario participa de una evaluación: habilitado y
// con el override ya vencido (o sin override).
func (s Schedule) activeAt(now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.OverrideUntil != nil && s.OverrideUntil.After(now) {
		return false
	}
	return true
}

package notifications

import (
	"fmt"
	"time"

	"pet-feeding-engine/internal/domain/feedings"
	"pet-feeding-engine/internal/domain/pets"

	"github.com/google/uuid"
)

// Generator arma los payloads a partir de la clasificación. Es puro salvo
// por los IDs: "now" entra siempre como parámetro, nunca del reloj global.
// No es idempotente: correrlo dos veces con el mismo instante re-emite las
// mismas notificaciones, igual que el sistema original.
type Generator struct {
	thresholds feedings.Thresholds
}

func NewGenerator(t feedings.Thresholds) *Generator {
	return &Generator{thresholds: t}
}

// Generate evalúa los chequeos en orden fijo (recordatorio, atraso, perdida,
// duplicado) y emite una notificación por cada condición verdadera; pueden
// salir varias de una sola llamada porque los chequeos son independientes.
// lastFedAt nil desactiva solo el chequeo de duplicado.
func (g *Generator) Generate(pet pets.Pet, scheduledAt time.Time, userID string, lastFedAt *time.Time, now time.Time, loc *time.Location) []Notification {
	st := g.thresholds.Classify(scheduledAt, now)
	clock := localClock(scheduledAt, loc)

	var out []Notification

	if st.ReminderDue {
		out = append(out, build(pet, KindReminder, scheduledAt, userID, now,
			fmt.Sprintf("Hora de alimentar a %s", pet.Name),
			fmt.Sprintf("%s debe ser alimentado a las %s.", pet.Name, clock),
			IconClock,
		))
	}
	if st.Late {
		out = append(out, build(pet, KindLate, scheduledAt, userID, now,
			fmt.Sprintf("Alimentación atrasada: %s", pet.Name),
			fmt.Sprintf("%s debería haber sido alimentado a las %s.", pet.Name, clock),
			IconAlertTriangle,
		))
	}
	if st.Missed {
		out = append(out, build(pet, KindMissed, scheduledAt, userID, now,
			fmt.Sprintf("Alimentación perdida: %s", pet.Name),
			fmt.Sprintf("%s no fue alimentado en el horario programado (%s).", pet.Name, clock),
			IconAlertCircle,
		))
	}
	if lastFedAt != nil && g.thresholds.IsDuplicate(*lastFedAt, now) {
		minutes := int(g.thresholds.DuplicateWindow / time.Minute)
		out = append(out, build(pet, KindDuplicate, scheduledAt, userID, now,
			fmt.Sprintf("Alimentación duplicada: %s", pet.Name),
			fmt.Sprintf("Intento de alimentar a %s de nuevo en menos de %d minutos.", pet.Name, minutes),
			IconAlertTriangle,
		))
	}

	return out
}

// ScheduleChanged avisa que el horario de la mascota cambió y cuál es el
// próximo instante re-evaluado.
func (g *Generator) ScheduleChanged(pet pets.Pet, newNextAt time.Time, userID string, now time.Time, loc *time.Location) Notification {
	return build(pet, KindScheduleChanged, newNextAt, userID, now,
		fmt.Sprintf("Horario actualizado: %s", pet.Name),
		fmt.Sprintf("El horario de alimentación de %s se actualizó a las %s.", pet.Name, localClock(newNextAt, loc)),
		IconBell,
	)
}

func build(pet pets.Pet, kind Kind, scheduledAt time.Time, userID string, now time.Time, title, message, icon string) Notification {
	return Notification{
		ID:           uuid.NewString(),
		Kind:         kind,
		PetID:        pet.ID,
		UserID:       userID,
		ScheduledFor: scheduledAt,
		CreatedAt:    now,
		Title:        title,
		Message:      message,
		Icon:         icon,
	}
}

func localClock(at time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return at.In(loc).Format("15:04")
}

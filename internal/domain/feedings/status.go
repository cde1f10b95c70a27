package feedings

import (
	"math"
	"time"
)

// Umbrales de negocio, en minutos en el producto original.
const (
	DefaultReminderWindow  = 30 * time.Minute
	DefaultLateAfter       = 15 * time.Minute
	DefaultMissedAfter     = 60 * time.Minute
	DefaultDuplicateWindow = 5 * time.Minute
)

// Thresholds clasifica una alimentación agendada contra un "now" explícito.
// Todos los bordes son exclusivos: a exactamente LateAfter de atraso todavía
// no está atrasada; a exactamente DuplicateWindow ya no es duplicada.
type Thresholds struct {
	ReminderWindow  time.Duration
	LateAfter       time.Duration
	MissedAfter     time.Duration
	DuplicateWindow time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ReminderWindow:  DefaultReminderWindow,
		LateAfter:       DefaultLateAfter,
		MissedAfter:     DefaultMissedAfter,
		DuplicateWindow: DefaultDuplicateWindow,
	}
}

// Status son chequeos independientes, no un estado excluyente: una
// alimentación puede estar atrasada y perdida a la vez.
type Status struct {
	ReminderDue bool
	Late        bool
	Missed      bool
}

func (t Thresholds) Classify(scheduledAt, now time.Time) Status {
	until := scheduledAt.Sub(now)
	past := now.Sub(scheduledAt)

	return Status{
		ReminderDue: until > 0 && until <= t.ReminderWindow,
		Late:        past > t.LateAfter,
		Missed:      past > t.MissedAfter,
	}
}

// IsDuplicate marca un intento de registrar otra alimentación demasiado
// pegado al anterior. Un instante anterior al último registro no cuenta:
// eso es una carga retroactiva de un registro viejo, no un doble registro.
func (t Thresholds) IsDuplicate(lastFedAt, now time.Time) bool {
	elapsed := now.Sub(lastFedAt)
	return elapsed >= 0 && elapsed < t.DuplicateWindow
}

// Progress devuelve qué fracción del intervalo actual ya pasó desde la
// última alimentación, acotada a [0, 1]. La UI la dibuja como anillo de
// progreso; si pasaron varios intervalos completos, cuenta solo el actual.
func Progress(lastFedAt, now time.Time, intervalHours float64) float64 {
	if intervalHours <= 0 || now.Before(lastFedAt) {
		return 0
	}

	step := time.Duration(intervalHours * float64(time.Hour))
	elapsed := now.Sub(lastFedAt)

	intervalsElapsed := math.Floor(float64(elapsed) / float64(step))
	currentStart := lastFedAt.Add(time.Duration(intervalsElapsed * float64(step)))

	frac := float64(now.Sub(currentStart)) / float64(step)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

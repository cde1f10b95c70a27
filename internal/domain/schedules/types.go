package schedules

type Kind string

const (
	// KindFixedTime repite una o más horas de reloj ("HH:MM") todos los días.
	KindFixedTime Kind = "fixed_time"
	// KindInterval repite cada N horas desde la última alimentación.
	KindInterval Kind = "interval"
)

// DiagnosticCode identifica los fallbacks no fatales de la evaluación.
type DiagnosticCode string

const (
	// DiagInvalidInterval: intervalo <= 0, se sustituyó el default seguro.
	DiagInvalidInterval DiagnosticCode = "invalid_interval"
	// DiagUnparseableTime: una entrada "HH:MM" ilegible, se saltó solo esa.
	DiagUnparseableTime DiagnosticCode = "unparseable_time"
)

// Diagnostic se devuelve en lugar de loguearse: la evaluación es pura y
// los tests pueden asegurar que el fallback ocurrió.
type Diagnostic struct {
	Code       DiagnosticCode
	ScheduleID string
	Message    string
}

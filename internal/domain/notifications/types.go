package notifications

type Kind string

const (
	KindReminder        Kind = "reminder"
	KindLate            Kind = "late"
	KindMissed          Kind = "missed"
	KindDuplicate       Kind = "duplicate"
	KindScheduleChanged Kind = "schedule_changed"
)

// Iconos que la capa de entrega mapea a su set (lucide en la web).
const (
	IconClock         = "clock"
	IconAlertTriangle = "alert-triangle"
	IconAlertCircle   = "alert-circle"
	IconBell          = "bell"
)

package notifications

import "time"

// Notification es un value object efímero: este core lo genera y lo entrega
// al Sink; persistirlo y despacharlo (push/email) es problema de otro.
type Notification struct {
	ID   string
	Kind Kind

	PetID  string
	UserID string

	// ScheduledFor es el instante de alimentación que motivó la notificación.
	ScheduledFor time.Time
	CreatedAt    time.Time

	Title   string
	Message string
	Icon    string
}

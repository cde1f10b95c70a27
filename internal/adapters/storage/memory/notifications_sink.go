package memory

import (
	"context"
	"sync"

	"pet-feeding-engine/internal/domain/notifications"
)

// NotificationSink acumula lo publicado. Devuelve el tipo concreto (y no la
// interfaz) para que dev y tests puedan inspeccionar lo que salió.
type NotificationSink struct {
	mu        sync.RWMutex
	published []notifications.Notification
}

func NewNotificationSink() *NotificationSink {
	return &NotificationSink{}
}

func (s *NotificationSink) Publish(ctx context.Context, ns ...notifications.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published = append(s.published, ns...)
	return nil
}

func (s *NotificationSink) Published() []notifications.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]notifications.Notification, len(s.published))
	copy(out, s.published)
	return out
}

package notifications

import "context"

// Sink recibe las notificaciones generadas. La deduplicación ("ya avisé por
// esta mascota+tipo+instante") es responsabilidad del sink o de su caller:
// el generador re-emite a propósito en cada corrida.
type Sink interface {
	Publish(ctx context.Context, ns ...Notification) error
}

package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

var (
	_ quality.ChangePublisher  = (*MemoryBus)(nil)
	_ quality.ChangeSubscriber = (*MemoryBus)(nil)
)

// MemoryBus bus de una sola instancia. Entrega en la goroutine del publicador,
// así la vista ya está recalculada cuando la mutación responde.
type MemoryBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]quality.ChangeHandler
	log      zerolog.Logger
}

// NewMemoryBus construye el bus.
func NewMemoryBus(log zerolog.Logger) *MemoryBus {
	return &MemoryBus{handlers: map[int]quality.ChangeHandler{}, log: log}
}

// PublishChange entrega ev a todos los handlers. Los errores de handler se registran y no se propagan.
func (b *MemoryBus) PublishChange(ctx context.Context, ev quality.ChangeEvent) error {
	b.mu.RLock()
	hs := make([]quality.ChangeHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		if err := h(ctx, ev); err != nil {
			b.log.Error().Err(err).Str("kind", ev.Kind).Str("order_number", ev.OrderNumber).Msg("manejar evento de cambio")
		}
	}
	return nil
}

// SubscribeChanges registra h hasta que ctx termine.
func (b *MemoryBus) SubscribeChanges(ctx context.Context, h quality.ChangeHandler) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

// Subscribers cantidad de handlers activos.
func (b *MemoryBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

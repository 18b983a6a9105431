// Package events transporta los eventos de cambio de inspecciones entre
// instancias (NATS) o dentro del mismo proceso (bus en memoria).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

var (
	_ quality.ChangePublisher  = (*NATSBus)(nil)
	_ quality.ChangeSubscriber = (*NATSBus)(nil)
)

// handlerTimeout tope para procesar un evento recibido.
const handlerTimeout = 30 * time.Second

// NATSBus publica y recibe ChangeEvent como JSON en un subject de NATS.
type NATSBus struct {
	conn    *nats.Conn
	subject string
	log     zerolog.Logger
}

// NewNATSBus conecta con el servidor NATS.
func NewNATSBus(url, subject string, log zerolog.Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("calidad-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats desconectado")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconectado")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSBus{conn: conn, subject: subject, log: log}, nil
}

// PublishChange serializa y publica el evento.
func (b *NATSBus) PublishChange(_ context.Context, ev quality.ChangeEvent) error {
	data, err := encodeChange(ev)
	if err != nil {
		return err
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", b.subject, err)
	}
	return nil
}

// SubscribeChanges registra h para cada evento del subject. La suscripción
// se cancela cuando ctx termina.
func (b *NATSBus) SubscribeChanges(ctx context.Context, h quality.ChangeHandler) error {
	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		ev, err := decodeChange(msg.Data)
		if err != nil {
			b.log.Warn().Err(err).Msg("evento de cambio ilegible")
			return
		}
		hctx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()
		if err := h(hctx, ev); err != nil {
			b.log.Error().Err(err).Str("kind", ev.Kind).Str("order_number", ev.OrderNumber).Msg("manejar evento de cambio")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", b.subject, err)
	}
	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

// Close drena las suscripciones pendientes y cierra la conexión.
func (b *NATSBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}

func encodeChange(ev quality.ChangeEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode change event: %w", err)
	}
	return data, nil
}

func decodeChange(data []byte) (quality.ChangeEvent, error) {
	var ev quality.ChangeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("decode change event: %w", err)
	}
	if ev.Kind == "" {
		return ev, fmt.Errorf("decode change event: falta kind")
	}
	return ev, nil
}

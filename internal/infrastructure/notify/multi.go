package notify

import (
	"context"
	"errors"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

// Multi reparte cada notificación entre varios canales; un canal caído no bloquea al resto.
type Multi []quality.Notifier

// Notify envía por todos los canales y une los errores.
func (m Multi) Notify(ctx context.Context, n quality.Notification) error {
	var errs []error
	for _, ch := range m {
		if err := ch.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

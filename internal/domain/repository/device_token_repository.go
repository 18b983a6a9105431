package repository

import (
	"context"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// DeviceTokenRepository tokens FCM registrados por los dispositivos.
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, t *entity.DeviceToken) error
	Delete(ctx context.Context, token string) error
	ListAll(ctx context.Context) ([]*entity.DeviceToken, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

var _ repository.DeviceTokenRepository = (*DeviceTokenRepo)(nil)

// DeviceTokenRepo tokens push sobre PostgreSQL.
type DeviceTokenRepo struct {
	q Querier
}

// NewDeviceTokenRepository construye el repositorio.
func NewDeviceTokenRepository(q Querier) *DeviceTokenRepo {
	return &DeviceTokenRepo{q: q}
}

// Upsert registra el token; si ya existía lo reasigna al usuario y plataforma actuales.
func (r *DeviceTokenRepo) Upsert(ctx context.Context, t *entity.DeviceToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO device_tokens (token, user_id, platform, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform`,
		t.Token, t.UserID, t.Platform, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert device token: %w", err)
	}
	return nil
}

// Delete elimina un token; no falla si no existía.
func (r *DeviceTokenRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM device_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete device token: %w", err)
	}
	return nil
}

// ListAll todos los tokens registrados.
func (r *DeviceTokenRepo) ListAll(ctx context.Context) ([]*entity.DeviceToken, error) {
	rows, err := r.q.Query(ctx, `SELECT token, user_id, platform, created_at FROM device_tokens ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	defer rows.Close()
	list := []*entity.DeviceToken{}
	for rows.Next() {
		var t entity.DeviceToken
		if err := rows.Scan(&t.Token, &t.UserID, &t.Platform, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

package repository

import (
	"context"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// OrderRepository registro de órdenes de producción.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
}

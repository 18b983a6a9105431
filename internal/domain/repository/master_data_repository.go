package repository

import (
	"context"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}

// PartRepository puerto de persistencia para el catálogo de piezas.
type PartRepository interface {
	Create(ctx context.Context, p *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetByCode(ctx context.Context, code string) (*entity.Part, error)
	Update(ctx context.Context, p *entity.Part) error
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	Delete(ctx context.Context, id string) error
}

// WorkerRepository puerto de persistencia para operarios.
type WorkerRepository interface {
	Create(ctx context.Context, w *entity.Worker) error
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	Update(ctx context.Context, w *entity.Worker) error
	List(ctx context.Context, workLine string, onlyActive bool) ([]*entity.Worker, error)
	Delete(ctx context.Context, id string) error
}

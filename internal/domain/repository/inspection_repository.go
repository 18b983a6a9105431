package repository

import (
	"context"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// InspectionRepository puerto del almacén de documentos de inspección.
// Get* devuelve (nil, nil) cuando el documento no existe.
type InspectionRepository interface {
	Create(ctx context.Context, rec *entity.InspectionRecord) error
	GetByID(ctx context.Context, id string) (*entity.InspectionRecord, error)
	Save(ctx context.Context, rec *entity.InspectionRecord) error
	// ListAll devuelve todos los registros, borradores incluidos, en orden de inserción.
	ListAll(ctx context.Context) ([]entity.InspectionRecord, error)
	ListByOrderNumber(ctx context.Context, orderNumber string) ([]entity.InspectionRecord, error)
	ListDrafts(ctx context.Context) ([]entity.InspectionRecord, error)
	// DeleteByOrderNumber borra todos los registros con esa clave y devuelve cuántos eran.
	DeleteByOrderNumber(ctx context.Context, orderNumber string) (int64, error)
	// NextSequence incrementa y devuelve el contador con nombre key (empieza en 1).
	NextSequence(ctx context.Context, key string) (int64, error)
}

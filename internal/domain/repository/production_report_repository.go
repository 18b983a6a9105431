package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// WorkLineTotals agregado de producción por línea.
type WorkLineTotals struct {
	WorkLine    string
	PlannedQty  int
	ProducedQty int
	DefectQty   int
	DefectRate  decimal.Decimal
}

// ProductionReportRepository puerto de persistencia para reportes diarios de producción.
type ProductionReportRepository interface {
	Create(ctx context.Context, r *entity.ProductionReport) error
	GetByID(ctx context.Context, id string) (*entity.ProductionReport, error)
	ListByDateRange(ctx context.Context, from, to time.Time, workLine string) ([]*entity.ProductionReport, error)
	SummaryByWorkLine(ctx context.Context, from, to time.Time) ([]WorkLineTotals, error)
	Delete(ctx context.Context, id string) error
}

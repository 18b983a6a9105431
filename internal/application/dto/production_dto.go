package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionReportRequest parte diario de producción.
type CreateProductionReportRequest struct {
	ReportDate  time.Time `json:"report_date" validate:"required"`
	WorkLine    string    `json:"work_line" validate:"required"`
	Worker      string    `json:"worker"`
	OrderNumber string    `json:"order_number"`
	ProductName string    `json:"product_name"`
	PlannedQty  int       `json:"planned_qty" validate:"min=0"`
	ProducedQty int       `json:"produced_qty" validate:"min=0"`
	DefectQty   int       `json:"defect_qty" validate:"min=0"`
	Notes       string    `json:"notes"`
}

// ProductionReportResponse salida de un parte de producción.
type ProductionReportResponse struct {
	ID          string          `json:"id"`
	ReportDate  time.Time       `json:"report_date"`
	WorkLine    string          `json:"work_line"`
	Worker      string          `json:"worker"`
	OrderNumber string          `json:"order_number,omitempty"`
	ProductName string          `json:"product_name"`
	PlannedQty  int             `json:"planned_qty"`
	ProducedQty int             `json:"produced_qty"`
	DefectQty   int             `json:"defect_qty"`
	DefectRate  decimal.Decimal `json:"defect_rate"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WorkLineSummaryDTO totales por línea en un rango de fechas.
type WorkLineSummaryDTO struct {
	WorkLine    string          `json:"work_line"`
	PlannedQty  int             `json:"planned_qty"`
	ProducedQty int             `json:"produced_qty"`
	DefectQty   int             `json:"defect_qty"`
	DefectRate  decimal.Decimal `json:"defect_rate"`
	Achievement decimal.Decimal `json:"achievement"` // producido/planificado × 100
}

// ProductionSummaryResponse resumen de producción de un período.
type ProductionSummaryResponse struct {
	From  time.Time            `json:"from"`
	To    time.Time            `json:"to"`
	Lines []WorkLineSummaryDTO `json:"lines"`
}

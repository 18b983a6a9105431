package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionReport parte diario de producción de una línea.
// DefectRate es porcentaje (0–100) con dos decimales.
type ProductionReport struct {
	ID          string
	ReportDate  time.Time
	WorkLine    string
	Worker      string
	OrderNumber string // opcional
	ProductName string
	PlannedQty  int
	ProducedQty int
	DefectQty   int
	DefectRate  decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

// ComputeDefectRate calcula defectuosos/producidos × 100 redondeado a 2 decimales.
// Si no hubo producción devuelve cero.
func ComputeDefectRate(produced, defects int) decimal.Decimal {
	if produced <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(defects)).
		Div(decimal.NewFromInt(int64(produced))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

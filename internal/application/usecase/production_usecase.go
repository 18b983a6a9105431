package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// ProductionUseCase partes diarios de producción y su resumen por línea.
type ProductionUseCase struct {
	repo repository.ProductionReportRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(repo repository.ProductionReportRepository) *ProductionUseCase {
	return &ProductionUseCase{repo: repo}
}

// Create registra un parte. La tasa de defectos se calcula aquí, nunca se recibe.
func (uc *ProductionUseCase) Create(ctx context.Context, userID string, in dto.CreateProductionReportRequest) (*dto.ProductionReportResponse, error) {
	if strings.TrimSpace(in.WorkLine) == "" {
		return nil, fmt.Errorf("%w: work_line requerido", domain.ErrInvalidInput)
	}
	if in.PlannedQty < 0 || in.ProducedQty < 0 || in.DefectQty < 0 {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}
	if in.DefectQty > in.ProducedQty {
		return nil, fmt.Errorf("%w: defectuosos (%d) mayor que producidos (%d)", domain.ErrInvalidInput, in.DefectQty, in.ProducedQty)
	}
	if in.ReportDate.IsZero() {
		return nil, fmt.Errorf("%w: report_date requerido", domain.ErrInvalidInput)
	}
	r := &entity.ProductionReport{
		ID:          uuid.New().String(),
		ReportDate:  in.ReportDate,
		WorkLine:    strings.TrimSpace(in.WorkLine),
		Worker:      in.Worker,
		OrderNumber: strings.TrimSpace(in.OrderNumber),
		ProductName: in.ProductName,
		PlannedQty:  in.PlannedQty,
		ProducedQty: in.ProducedQty,
		DefectQty:   in.DefectQty,
		DefectRate:  entity.ComputeDefectRate(in.ProducedQty, in.DefectQty),
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toProductionResponse(r), nil
}

// GetByID obtiene un parte por ID.
func (uc *ProductionUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionReportResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductionResponse(r), nil
}

// List partes en [from, to], opcionalmente de una línea.
func (uc *ProductionUseCase) List(ctx context.Context, from, to time.Time, workLine string) ([]dto.ProductionReportResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango invertido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByDateRange(ctx, from, to, workLine)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toProductionResponse(r))
	}
	return out, nil
}

// Summary totales por línea con tasa de defectos y cumplimiento del plan.
func (uc *ProductionUseCase) Summary(ctx context.Context, from, to time.Time) (*dto.ProductionSummaryResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango invertido", domain.ErrInvalidInput)
	}
	totals, err := uc.repo.SummaryByWorkLine(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.WorkLineSummaryDTO, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, dto.WorkLineSummaryDTO{
			WorkLine:    t.WorkLine,
			PlannedQty:  t.PlannedQty,
			ProducedQty: t.ProducedQty,
			DefectQty:   t.DefectQty,
			DefectRate:  entity.ComputeDefectRate(t.ProducedQty, t.DefectQty),
			Achievement: achievement(t.PlannedQty, t.ProducedQty),
		})
	}
	return &dto.ProductionSummaryResponse{From: from, To: to, Lines: lines}, nil
}

// Delete elimina un parte.
func (uc *ProductionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// achievement producido/planificado × 100 con dos decimales; sin plan es cero.
func achievement(planned, produced int) decimal.Decimal {
	if planned <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(produced)).
		Div(decimal.NewFromInt(int64(planned))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func toProductionResponse(r *entity.ProductionReport) *dto.ProductionReportResponse {
	if r == nil {
		return nil
	}
	return &dto.ProductionReportResponse{
		ID:          r.ID,
		ReportDate:  r.ReportDate,
		WorkLine:    r.WorkLine,
		Worker:      r.Worker,
		OrderNumber: r.OrderNumber,
		ProductName: r.ProductName,
		PlannedQty:  r.PlannedQty,
		ProducedQty: r.ProducedQty,
		DefectQty:   r.DefectQty,
		DefectRate:  r.DefectRate,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

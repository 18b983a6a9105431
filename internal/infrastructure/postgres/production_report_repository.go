package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

var _ repository.ProductionReportRepository = (*ProductionReportRepo)(nil)

const reportColumns = `id, report_date, work_line, worker, order_number, product_name,
	planned_qty, produced_qty, defect_qty, defect_rate, notes, created_by, created_at`

// ProductionReportRepo partes diarios de producción sobre PostgreSQL.
type ProductionReportRepo struct {
	q Querier
}

// NewProductionReportRepository construye el repositorio.
func NewProductionReportRepository(q Querier) *ProductionReportRepo {
	return &ProductionReportRepo{q: q}
}

// Create inserta un parte.
func (r *ProductionReportRepo) Create(ctx context.Context, p *entity.ProductionReport) error {
	_, err := r.q.Exec(ctx, `INSERT INTO production_reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.ReportDate, p.WorkLine, p.Worker, p.OrderNumber, p.ProductName,
		p.PlannedQty, p.ProducedQty, p.DefectQty, p.DefectRate, p.Notes, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production report: %w", err)
	}
	return nil
}

// GetByID obtiene un parte; (nil, nil) si no existe.
func (r *ProductionReportRepo) GetByID(ctx context.Context, id string) (*entity.ProductionReport, error) {
	p, err := scanReport(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM production_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production report: %w", err)
	}
	return p, nil
}

// ListByDateRange partes con report_date en [from, to]; workLine vacío no filtra.
func (r *ProductionReportRepo) ListByDateRange(ctx context.Context, from, to time.Time, workLine string) ([]*entity.ProductionReport, error) {
	rows, err := r.q.Query(ctx, `SELECT `+reportColumns+` FROM production_reports
		WHERE report_date BETWEEN $1 AND $2 AND ($3 = '' OR work_line = $3)
		ORDER BY report_date DESC, work_line, created_at`, from, to, workLine)
	if err != nil {
		return nil, fmt.Errorf("list production reports: %w", err)
	}
	defer rows.Close()
	list := []*entity.ProductionReport{}
	for rows.Next() {
		p, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production report: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SummaryByWorkLine totales por línea en [from, to]. La tasa se recalcula sobre los totales.
func (r *ProductionReportRepo) SummaryByWorkLine(ctx context.Context, from, to time.Time) ([]repository.WorkLineTotals, error) {
	rows, err := r.q.Query(ctx, `
		SELECT work_line,
			COALESCE(SUM(planned_qty), 0)::bigint,
			COALESCE(SUM(produced_qty), 0)::bigint,
			COALESCE(SUM(defect_qty), 0)::bigint
		FROM production_reports
		WHERE report_date BETWEEN $1 AND $2
		GROUP BY work_line
		ORDER BY work_line`, from, to)
	if err != nil {
		return nil, fmt.Errorf("summary by work line: %w", err)
	}
	defer rows.Close()
	out := []repository.WorkLineTotals{}
	for rows.Next() {
		var (
			t                         repository.WorkLineTotals
			planned, produced, defect int64
		)
		if err := rows.Scan(&t.WorkLine, &planned, &produced, &defect); err != nil {
			return nil, fmt.Errorf("scan work line totals: %w", err)
		}
		t.PlannedQty, t.ProducedQty, t.DefectQty = int(planned), int(produced), int(defect)
		t.DefectRate = entity.ComputeDefectRate(t.ProducedQty, t.DefectQty)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete elimina un parte.
func (r *ProductionReportRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReport(row rowScanner) (*entity.ProductionReport, error) {
	var (
		p    entity.ProductionReport
		rate decimal.Decimal
	)
	err := row.Scan(&p.ID, &p.ReportDate, &p.WorkLine, &p.Worker, &p.OrderNumber, &p.ProductName,
		&p.PlannedQty, &p.ProducedQty, &p.DefectQty, &rate, &p.Notes, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.DefectRate = rate
	return &p, nil
}

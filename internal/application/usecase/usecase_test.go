package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type memOrders struct{ items []*entity.Order }

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	c := *o
	m.items = append(m.items, &c)
	return nil
}
func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range m.items {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memOrders) GetByOrderNumber(_ context.Context, n string) (*entity.Order, error) {
	for _, o := range m.items {
		if o.OrderNumber == n {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memOrders) Update(_ context.Context, o *entity.Order) error {
	for i := range m.items {
		if m.items[i].ID == o.ID {
			c := *o
			m.items[i] = &c
		}
	}
	return nil
}
func (m *memOrders) List(_ context.Context, status string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range m.items {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

type memReports struct {
	items  []*entity.ProductionReport
	totals []repository.WorkLineTotals
}

func (m *memReports) Create(_ context.Context, r *entity.ProductionReport) error {
	m.items = append(m.items, r)
	return nil
}
func (m *memReports) GetByID(context.Context, string) (*entity.ProductionReport, error) {
	return nil, nil
}
func (m *memReports) ListByDateRange(context.Context, time.Time, time.Time, string) ([]*entity.ProductionReport, error) {
	return m.items, nil
}
func (m *memReports) SummaryByWorkLine(context.Context, time.Time, time.Time) ([]repository.WorkLineTotals, error) {
	return m.totals, nil
}
func (m *memReports) Delete(context.Context, string) error { return nil }

// ── órdenes ───────────────────────────────────────────────────────────────────

func TestOrder_CreateRechazaCentinelaYDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewOrderUseCase(&memOrders{})

	_, err := uc.Create(ctx, dto.CreateOrderRequest{OrderNumber: "T"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrSentinelOrder)

	o, err := uc.Create(ctx, dto.CreateOrderRequest{OrderNumber: " PO-1 ", ProductName: "Tapa", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, "PO-1", o.OrderNumber)
	assert.Equal(t, entity.OrderStatusRegistered, o.Status)

	_, err = uc.Create(ctx, dto.CreateOrderRequest{OrderNumber: "PO-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrder_UpdateEstado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewOrderUseCase(&memOrders{})
	o, err := uc.Create(ctx, dto.CreateOrderRequest{OrderNumber: "PO-1"})
	require.NoError(t, err)

	bad := "lost"
	_, err = uc.Update(ctx, o.ID, dto.UpdateOrderRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	shipped := entity.OrderStatusShipped
	out, err := uc.Update(ctx, o.ID, dto.UpdateOrderRequest{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, shipped, out.Status)

	missing, err := uc.Update(ctx, "nope", dto.UpdateOrderRequest{})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

// ── producción ────────────────────────────────────────────────────────────────

func TestProduction_CreateCalculaTasa(t *testing.T) {
	repo := &memReports{}
	uc := usecase.NewProductionUseCase(repo)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	r, err := uc.Create(context.Background(), "u-1", dto.CreateProductionReportRequest{
		ReportDate: day, WorkLine: "L1", ProducedQty: 400, DefectQty: 10, PlannedQty: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "2.5", r.DefectRate.String())
	assert.Equal(t, "u-1", r.CreatedBy)

	_, err = uc.Create(context.Background(), "u-1", dto.CreateProductionReportRequest{
		ReportDate: day, WorkLine: "L1", ProducedQty: 1, DefectQty: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), "u-1", dto.CreateProductionReportRequest{WorkLine: "L1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduction_Summary(t *testing.T) {
	repo := &memReports{totals: []repository.WorkLineTotals{
		{WorkLine: "L1", PlannedQty: 1000, ProducedQty: 950, DefectQty: 19},
		{WorkLine: "L2", PlannedQty: 0, ProducedQty: 0, DefectQty: 0},
	}}
	uc := usecase.NewProductionUseCase(repo)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s, err := uc.Summary(context.Background(), from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "2", s.Lines[0].DefectRate.String())
	assert.Equal(t, "95", s.Lines[0].Achievement.String())
	assert.True(t, s.Lines[1].DefectRate.IsZero())

	_, err = uc.Summary(context.Background(), from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

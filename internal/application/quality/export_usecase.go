package quality

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

const (
	defaultLabelSize = 256
	minLabelSize     = 64
	maxLabelSize     = 1024
)

// ExportUseCase descargas derivadas de la vista agrupada: planilla, reporte PDF y etiqueta QR.
type ExportUseCase struct {
	view   *GroupedView
	sheet  GroupSheetExporter
	report GroupReportGenerator
	labels LabelGenerator
	loc    *time.Location
	now    func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(view *GroupedView, sheet GroupSheetExporter, report GroupReportGenerator, labels LabelGenerator, loc *time.Location) *ExportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportUseCase{view: view, sheet: sheet, report: report, labels: labels, loc: loc, now: time.Now}
}

// GroupsSheet planilla Excel de los grupos que cumplen los filtros.
func (uc *ExportUseCase) GroupsSheet(ctx context.Context, in dto.GroupFilterRequest) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	now := uc.now()
	preds, err := BuildPredicates(in, now, uc.loc)
	if err != nil {
		return nil, "", err
	}
	groups := uc.view.Filter(preds...)
	data, err := uc.sheet.ExportGroups(groups)
	if err != nil {
		return nil, "", fmt.Errorf("exportar planilla: %w", err)
	}
	return data, fmt.Sprintf("inspecciones_%s.xlsx", now.In(uc.loc).Format("20060102_1504")), nil
}

// GroupReport PDF con el detalle completo de un grupo.
func (uc *ExportUseCase) GroupReport(ctx context.Context, orderNumber string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if entity.IsDraftOrderNumber(orderNumber) {
		return nil, "", domain.ErrSentinelOrder
	}
	g, ok := uc.view.Find(orderNumber)
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.report.GenerateGroupReport(g, uc.now().In(uc.loc))
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	return data, fmt.Sprintf("calidad_%s.pdf", safeFileName(orderNumber)), nil
}

// OrderLabel PNG con el QR del número de orden. size fuera de rango se ajusta.
func (uc *ExportUseCase) OrderLabel(ctx context.Context, orderNumber string, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if entity.IsDraftOrderNumber(orderNumber) {
		return nil, domain.ErrSentinelOrder
	}
	switch {
	case size == 0:
		size = defaultLabelSize
	case size < minLabelSize:
		size = minLabelSize
	case size > maxLabelSize:
		size = maxLabelSize
	}
	png, err := uc.labels.OrderLabel(orderNumber, size)
	if err != nil {
		return nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	return png, nil
}

func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

// Package export genera las descargas del tablero: planilla Excel de la vista
// agrupada y etiquetas QR de número de orden.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

var _ quality.GroupSheetExporter = (*ExcelExporter)(nil)

const (
	sheetGroups  = "Grupos"
	sheetRecords = "Inspecciones"
	cellTime     = "2006-01-02 15:04"
)

var (
	groupHeader = []any{
		"N° orden", "Última fecha", "Producto", "Pieza", "Proveedor", "Material", "Color",
		"Cantidad", "IQC", "PQC", "OQC", "Rechazadas", "Urgente",
	}
	recordHeader = []any{
		"N° orden", "ID", "Fase", "Fecha", "Resultado", "Urgente", "Inspector",
		"Defecto", "Motivo", "Cant. defectuosa", "Operario", "Lote", "Cliente", "Comentarios",
	}
)

// ExcelExporter arma un libro con una hoja por grupo y otra por inspección.
type ExcelExporter struct {
	loc *time.Location
}

// NewExcelExporter fechas en loc.
func NewExcelExporter(loc *time.Location) *ExcelExporter {
	if loc == nil {
		loc = time.UTC
	}
	return &ExcelExporter{loc: loc}
}

// ExportGroups respeta el orden recibido (última fecha descendente).
func (e *ExcelExporter) ExportGroups(groups []entity.GroupedInspection) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetGroups); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetRecords); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := writeRow(f, sheetGroups, 1, groupHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheetRecords, 1, recordHeader); err != nil {
		return nil, err
	}

	recRow := 2
	for i := range groups {
		g := &groups[i]
		failed, urgent := 0, false
		for _, r := range g.Records() {
			if r.Result == entity.ResultFail {
				failed++
			}
			urgent = urgent || r.Urgent
			if err := writeRow(f, sheetRecords, recRow, e.recordCells(g.OrderNumber, &r)); err != nil {
				return nil, err
			}
			recRow++
		}
		cells := []any{
			g.OrderNumber, g.LatestDate.In(e.loc).Format(cellTime), g.Common.ProductName, g.Common.PartName,
			g.Common.Supplier, g.Common.Material, g.Common.Color, g.Common.OrderQuantity,
			len(g.Incoming), len(g.InProcess), len(g.Outgoing), failed, yesNo(urgent),
		}
		if err := writeRow(f, sheetGroups, i+2, cells); err != nil {
			return nil, err
		}
	}

	for _, s := range []struct {
		name string
		cols int
	}{{sheetGroups, len(groupHeader)}, {sheetRecords, len(recordHeader)}} {
		last, _ := excelize.CoordinatesToCellName(s.cols, 1)
		if err := f.SetCellStyle(s.name, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
		}
		if err := f.SetPanes(s.name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, fmt.Errorf("excel: fijar encabezado: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) recordCells(orderNumber string, r *entity.InspectionRecord) []any {
	var lot, customer string
	if r.Details.Incoming != nil {
		lot = r.Details.Incoming.LotNumber
	}
	if r.Details.Outgoing != nil {
		customer = r.Details.Outgoing.Customer
	}
	id := r.Common.DisplayID
	if id == "" {
		id = r.ID
	}
	return []any{
		orderNumber, id, r.Phase.DisplayPrefix(), r.EffectiveDate().In(e.loc).Format(cellTime),
		r.Result, yesNo(r.Urgent), r.Inspector, r.DefectType, r.FailureReason,
		r.Details.DefectQuantity(), r.Worker(), lot, customer, len(r.Comments),
	}
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("excel: fila %d de %s: %w", rowNum, sheet, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

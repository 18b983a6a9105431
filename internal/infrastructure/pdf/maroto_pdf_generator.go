// Package pdf genera el reporte de calidad de un número de orden con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de calidad  │  N° orden + fecha de emisión │
//	│  DATOS DE LA ORDEN: producto, pieza, material, cantidad...  │
//	│  RECEPCIÓN (IQC) / PROCESO (PQC) / DESPACHO (OQC)           │
//	│    ID | Fecha | Resultado | Inspector | Defecto | Cant.     │
//	│  HISTORIAL y COMENTARIOS del grupo                          │
//	│  FOOTER: QR del número de orden                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

var _ quality.GroupReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorFail    = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// Filas de historial y comentarios impresas por grupo.
const maxTrailRows = 30

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quality.GroupReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	loc *time.Location
}

// NewMarotoPDFGenerator construye el generador; las fechas se imprimen en loc.
func NewMarotoPDFGenerator(loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{loc: loc}
}

// GenerateGroupReport genera el PDF del grupo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateGroupReport(grp *entity.GroupedInspection, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de calidad "+grp.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(grp, generatedAt.In(g.loc)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(commonRows(grp.Common)...)

	sections := []struct {
		title   string
		records []entity.InspectionRecord
	}{
		{"RECEPCIÓN (IQC)", grp.Incoming},
		{"PROCESO (PQC)", grp.InProcess},
		{"DESPACHO (OQC)", grp.Outgoing},
	}
	for _, s := range sections {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle(fmt.Sprintf("%s · %d", s.title, len(s.records))))
		if len(s.records) == 0 {
			m.AddRows(emptyRow("Sin inspecciones"))
			continue
		}
		m.AddRows(tableHeaderRow())
		m.AddRows(g.recordRows(s.records)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("HISTORIAL"))
	m.AddRows(g.historyRows(grp.History)...)
	m.AddRows(sectionTitle("COMENTARIOS"))
	m.AddRows(g.commentRows(grp.Comments)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(grp.OrderNumber))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de orden + fecha de emisión (der).
func headerRow(grp *entity.GroupedInspection, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE CALIDAD", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d inspecciones · última %s", grp.Size(), grp.LatestDate.Format("02/01/2006 15:04")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(grp.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func commonRows(c entity.CommonFields) []core.Row {
	qty := "—"
	if c.OrderQuantity > 0 {
		qty = strconv.Itoa(c.OrderQuantity)
	}
	return []core.Row{
		sectionTitle("DATOS DE LA ORDEN"),
		row.New(6).Add(
			kv("Producto", c.ProductName, 4),
			kv("Pieza", c.PartName, 4),
			kv("Proveedor", c.Supplier, 4),
		),
		row.New(6).Add(
			kv("Material", c.Material, 3),
			kv("Color", c.Color, 3),
			kv("Cantidad", qty, 3),
			kv("Línea", c.WorkLine, 3),
		),
		row.New(6).Add(
			kv("Especificación", c.Specification, 6),
			kv("Post-proceso", c.PostProcess, 6),
		),
	}
}

func kv(label, value string, size int) core.Col {
	return col.New(size).Add(text.New(label+": "+nonEmpty(value, "—"), props.Text{Size: 8, Top: 1}))
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(s string) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("ID", 2, align.Left),
		h("Fecha", 2, align.Left),
		h("Resultado", 1, align.Center),
		h("Inspector", 2, align.Left),
		h("Defecto", 3, align.Left),
		h("Cant. def.", 2, align.Right),
	)
}

// recordRows: una fila por inspección, en el orden de la vista agrupada.
func (g *MarotoPDFGenerator) recordRows(records []entity.InspectionRecord) []core.Row {
	out := make([]core.Row, 0, len(records))
	for i := range records {
		r := &records[i]
		resultProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if r.Result == entity.ResultFail {
			resultProps.Style = fontstyle.Bold
			resultProps.Color = colorFail
		}
		defect := r.DefectType
		if r.FailureReason != "" {
			defect = nonEmpty(defect, "—") + ": " + r.FailureReason
		}
		if r.Urgent {
			defect = "[URGENTE] " + defect
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(nonEmpty(r.Common.DisplayID, r.ID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.EffectiveDate().In(g.loc).Format("02/01/06 15:04"), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(resultLabel(r.Result), resultProps)),
			col.New(2).Add(text.New(nonEmpty(r.Inspector, "—"), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(defect, "—"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(r.Details.DefectQuantity()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *MarotoPDFGenerator) historyRows(h []entity.HistoryEntry) []core.Row {
	if len(h) == 0 {
		return []core.Row{emptyRow("Sin movimientos")}
	}
	out := make([]core.Row, 0, min(len(h), maxTrailRows))
	for i, e := range h {
		if i == maxTrailRows {
			out = append(out, emptyRow(fmt.Sprintf("… %d movimientos más", len(h)-maxTrailRows)))
			break
		}
		msg := fmt.Sprintf("%s  %s  por %s", e.Date.In(g.loc).Format("02/01/06 15:04"), e.Status, nonEmpty(e.User, "—"))
		if e.Reason != "" {
			msg += " · " + e.Reason
		}
		out = append(out, row.New(5).Add(col.New(12).Add(text.New(msg, props.Text{Size: 7.5, Top: 1, Left: 2}))))
	}
	return out
}

func (g *MarotoPDFGenerator) commentRows(cs []entity.Comment) []core.Row {
	if len(cs) == 0 {
		return []core.Row{emptyRow("Sin comentarios")}
	}
	out := make([]core.Row, 0, min(len(cs), maxTrailRows))
	for i, c := range cs {
		if i == maxTrailRows {
			out = append(out, emptyRow(fmt.Sprintf("… %d comentarios más", len(cs)-maxTrailRows)))
			break
		}
		msg := fmt.Sprintf("%s  %s: %s", c.Date.In(g.loc).Format("02/01/06 15:04"), nonEmpty(c.Author, "—"), c.Text)
		out = append(out, row.New(5).Add(col.New(12).Add(text.New(msg, props.Text{Size: 7.5, Top: 1, Left: 2}))))
	}
	return out
}

// footerRow: QR con el número de orden para ubicar el grupo desde planta.
func footerRow(orderNumber string) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(orderNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para abrir el grupo en el tablero de calidad.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func resultLabel(r string) string {
	switch r {
	case entity.ResultPass:
		return "OK"
	case entity.ResultFail:
		return "NG"
	case entity.ResultHold:
		return "RETENIDO"
	}
	return "PEND."
}

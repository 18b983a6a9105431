package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// LegacyInspection documento exportado del sistema anterior (claves camelCase,
// fechas en texto ISO-8601, detalle de fase aplanado).
type LegacyInspection struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	InspectionType string          `json:"inspectionType"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
	InspectionDate string          `json:"inspectionDate"`
	Supplier       string          `json:"supplier"`
	ProductName    string          `json:"productName"`
	PartName       string          `json:"partName"`
	Material       string          `json:"material"`
	Color          string          `json:"color"`
	OrderQuantity  int             `json:"orderQuantity"`
	Specification  string          `json:"specification"`
	PostProcess    string          `json:"postProcess"`
	WorkLine       string          `json:"workLine"`
	DisplayID      string          `json:"displayId"`
	Result         string          `json:"result"`
	Urgent         bool            `json:"urgent"`
	Inspector      string          `json:"inspector"`
	DefectType     string          `json:"defectType"`
	FailureReason  string          `json:"failureReason"`
	Details        LegacyDetails   `json:"details"`
	History        []LegacyHistory `json:"history"`
	Comments       []LegacyComment `json:"comments"`
	ImageURLs      []string        `json:"imageUrls"`
}

// LegacyDetails unión de los campos de las tres fases.
type LegacyDetails struct {
	LotNumber        string `json:"lotNumber"`
	ReceivedQuantity int    `json:"receivedQuantity"`
	SampleSize       int    `json:"sampleSize"`
	ProcessStep      string `json:"processStep"`
	Worker           string `json:"worker"`
	CheckedQuantity  int    `json:"checkedQuantity"`
	Customer         string `json:"customer"`
	ShipmentQuantity int    `json:"shipmentQuantity"`
	ShippingDate     string `json:"shippingDate"`
	DefectQuantity   int    `json:"defectQuantity"`
}

// LegacyHistory entrada de historial con fecha en texto.
type LegacyHistory struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	User   string `json:"user"`
	Reason string `json:"reason"`
}

// LegacyComment comentario con fecha en texto.
type LegacyComment struct {
	Date   string `json:"date"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// ToRecord convierte al modelo de dominio. createdAt es obligatorio y estricto;
// las demás fechas, si vienen, también deben ser válidas.
func (l *LegacyInspection) ToRecord() (entity.InspectionRecord, error) {
	created, err := entity.ParseTimestamp(l.CreatedAt)
	if err != nil {
		return entity.InspectionRecord{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := optionalTime(l.UpdatedAt)
	if err != nil {
		return entity.InspectionRecord{}, fmt.Errorf("updatedAt: %w", err)
	}
	inspected, err := optionalTime(l.InspectionDate)
	if err != nil {
		return entity.InspectionRecord{}, fmt.Errorf("inspectionDate: %w", err)
	}

	rec := entity.InspectionRecord{
		ID:             strings.TrimSpace(l.ID),
		OrderNumber:    l.OrderNumber,
		Phase:          entity.Phase(l.InspectionType),
		CreatedAt:      created,
		InspectionDate: inspected,
		Common: entity.CommonFields{
			Supplier: l.Supplier, ProductName: l.ProductName, PartName: l.PartName,
			Material: l.Material, Color: l.Color, OrderQuantity: l.OrderQuantity,
			Specification: l.Specification, PostProcess: l.PostProcess,
			WorkLine: l.WorkLine, DisplayID: l.DisplayID,
		},
		Result:        l.Result,
		Urgent:        l.Urgent,
		Inspector:     l.Inspector,
		DefectType:    l.DefectType,
		FailureReason: l.FailureReason,
		ImageURLs:     append([]string{}, l.ImageURLs...),
	}
	if updated != nil {
		rec.UpdatedAt = *updated
	}

	d := l.Details
	switch rec.Phase {
	case entity.PhaseIncoming:
		rec.Details.Incoming = &entity.IncomingDetails{
			LotNumber: d.LotNumber, ReceivedQuantity: d.ReceivedQuantity,
			SampleSize: d.SampleSize, DefectQuantity: d.DefectQuantity,
		}
	case entity.PhaseInProcess:
		rec.Details.InProcess = &entity.InProcessDetails{
			ProcessStep: d.ProcessStep, Worker: d.Worker,
			CheckedQuantity: d.CheckedQuantity, DefectQuantity: d.DefectQuantity,
		}
	case entity.PhaseOutgoing:
		shipped, err := optionalTime(d.ShippingDate)
		if err != nil {
			return entity.InspectionRecord{}, fmt.Errorf("shippingDate: %w", err)
		}
		rec.Details.Outgoing = &entity.OutgoingDetails{
			Customer: d.Customer, ShipmentQuantity: d.ShipmentQuantity,
			DefectQuantity: d.DefectQuantity, ShippingDate: shipped,
		}
	}

	rec.History = make([]entity.HistoryEntry, 0, len(l.History))
	for i, h := range l.History {
		at, err := entity.ParseTimestamp(h.Date)
		if err != nil {
			return entity.InspectionRecord{}, fmt.Errorf("history[%d]: %w", i, err)
		}
		rec.History = append(rec.History, entity.HistoryEntry{Status: h.Status, Date: at, User: h.User, Reason: h.Reason})
	}
	rec.Comments = make([]entity.Comment, 0, len(l.Comments))
	for i, c := range l.Comments {
		at, err := entity.ParseTimestamp(c.Date)
		if err != nil {
			return entity.InspectionRecord{}, fmt.Errorf("comments[%d]: %w", i, err)
		}
		rec.Comments = append(rec.Comments, entity.Comment{Date: at, Author: c.Author, Text: c.Text})
	}
	return rec, nil
}

func optionalTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := entity.ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Package quality contiene los casos de uso de inspecciones de calidad:
// alta y edición de registros, la vista agrupada por número de orden,
// el resumen del tablero y las exportaciones.
package quality

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// Tipos de evento de cambio.
const (
	ChangeCreated      = "created"
	ChangeUpdated      = "updated"
	ChangeGroupDeleted = "group_deleted"
	ChangeImported     = "imported"
)

// ChangeEvent notifica que el conjunto de registros cambió.
type ChangeEvent struct {
	Kind        string    `json:"kind"`
	OrderNumber string    `json:"order_number,omitempty"`
	RecordID    string    `json:"record_id,omitempty"`
	At          time.Time `json:"at"`
}

// ChangePublisher emite eventos de cambio tras cada mutación.
type ChangePublisher interface {
	PublishChange(ctx context.Context, ev ChangeEvent) error
}

// ChangeHandler reacciona a un evento de cambio.
type ChangeHandler func(ctx context.Context, ev ChangeEvent) error

// ChangeSubscriber entrega eventos de cambio a un handler.
type ChangeSubscriber interface {
	SubscribeChanges(ctx context.Context, h ChangeHandler) error
}

// ImageStorage almacén de fotos de inspección.
type ImageStorage interface {
	// Put guarda el contenido bajo key y devuelve la URL pública.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete borra la imagen referenciada por url; si no existe no es error.
	Delete(ctx context.Context, url string) error
}

// Niveles de notificación.
const (
	LevelInfo  = "info"
	LevelAlert = "alert"
)

// Notification aviso a enviar a los canales configurados (push, chat).
type Notification struct {
	Level string
	Title string
	Body  string
	Data  map[string]string
}

// Notifier despacha notificaciones. La entrega es best-effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// GroupSheetExporter genera la planilla de la vista agrupada.
type GroupSheetExporter interface {
	ExportGroups(groups []entity.GroupedInspection) ([]byte, error)
}

// GroupReportGenerator genera el reporte PDF de un grupo.
type GroupReportGenerator interface {
	GenerateGroupReport(g *entity.GroupedInspection, generatedAt time.Time) ([]byte, error)
}

// LabelGenerator genera etiquetas QR para números de orden.
type LabelGenerator interface {
	OrderLabel(orderNumber string, size int) ([]byte, error)
}

package dto

import (
	"time"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// CreateInspectionRequest alta de una inspección desde el formulario.
// OrderNumber vacío o "T" crea un borrador.
type CreateInspectionRequest struct {
	OrderNumber    string              `json:"order_number"`
	InspectionType string              `json:"inspection_type" validate:"required,oneof=incoming inProcess outgoing"`
	InspectionDate *time.Time          `json:"inspection_date"`
	Common         entity.CommonFields `json:"common"`
	Result         string              `json:"result" validate:"omitempty,oneof=pending pass fail hold"`
	Urgent         bool                `json:"urgent"`
	Inspector      string              `json:"inspector"`
	DefectType     string              `json:"defect_type"`
	FailureReason  string              `json:"failure_reason"`
	Details        entity.PhaseDetails `json:"details"`
	Comment        string              `json:"comment"`
	ImageURLs      []string            `json:"image_urls"`
}

// UpdateInspectionRequest edición parcial; los campos nil no cambian.
type UpdateInspectionRequest struct {
	OrderNumber    *string              `json:"order_number"`
	InspectionDate *time.Time           `json:"inspection_date"`
	Common         *entity.CommonFields `json:"common"`
	Result         *string              `json:"result" validate:"omitempty,oneof=pending pass fail hold"`
	Urgent         *bool                `json:"urgent"`
	Inspector      *string              `json:"inspector"`
	DefectType     *string              `json:"defect_type"`
	FailureReason  *string              `json:"failure_reason"`
	Details        *entity.PhaseDetails `json:"details"`
	Reason         string               `json:"reason"`
}

// AddCommentRequest comentario libre sobre un registro.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// RemoveImageRequest referencia de imagen a quitar de un registro.
type RemoveImageRequest struct {
	URL string `json:"url" validate:"required"`
}

// InspectionListResponse lista de registros (p. ej. borradores).
type InspectionListResponse struct {
	Items []entity.InspectionRecord `json:"items"`
	Total int                       `json:"total"`
}

// GroupFilterRequest filtros de la vista agrupada (query string).
// From/To en RFC 3339 o YYYY-MM-DD.
type GroupFilterRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Today  bool   `query:"today"`
	Urgent bool   `query:"urgent"`
	Failed bool   `query:"failed"`
	Defect string `query:"defect"`
	Worker string `query:"worker"`
	Reason string `query:"reason"`
	Q      string `query:"q"`
}

// GroupListResponse vista agrupada por número de orden.
type GroupListResponse struct {
	Items       []entity.GroupedInspection `json:"items"`
	Total       int                        `json:"total"`
	RefreshedAt time.Time                  `json:"refreshed_at"`
}

// DeleteGroupResponse resultado del borrado de un grupo completo.
type DeleteGroupResponse struct {
	OrderNumber string `json:"order_number"`
	Deleted     int64  `json:"deleted"`
}

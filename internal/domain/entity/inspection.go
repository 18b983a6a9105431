package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Calidad-api/internal/domain"
)

// DraftOrderNumber marca un registro aún no vinculado a una orden.
const DraftOrderNumber = "T"

// Phase etapa de inspección. Se fija al crear el registro y no cambia.
type Phase string

// Fases válidas.
const (
	PhaseIncoming  Phase = "incoming"  // recepción
	PhaseInProcess Phase = "inProcess" // en línea
	PhaseOutgoing  Phase = "outgoing"  // despacho
)

// Valid informa si la fase es una de las tres conocidas.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIncoming, PhaseInProcess, PhaseOutgoing:
		return true
	}
	return false
}

// DisplayPrefix prefijo del ID secuencial visible por fase (IQC/PQC/OQC).
func (p Phase) DisplayPrefix() string {
	switch p {
	case PhaseIncoming:
		return "IQC"
	case PhaseInProcess:
		return "PQC"
	case PhaseOutgoing:
		return "OQC"
	}
	return "QC"
}

// Resultados de una inspección.
const (
	ResultPending = "pending"
	ResultPass    = "pass"
	ResultFail    = "fail"
	ResultHold    = "hold"
)

// ValidResult informa si r es un resultado conocido (vacío se trata como pending).
func ValidResult(r string) bool {
	switch r {
	case "", ResultPending, ResultPass, ResultFail, ResultHold:
		return true
	}
	return false
}

// IsDraftOrderNumber informa si el número de orden es el centinela de borrador ("T" o vacío).
func IsDraftOrderNumber(orderNumber string) bool {
	n := strings.TrimSpace(orderNumber)
	return n == "" || n == DraftOrderNumber
}

// CommonFields datos descriptivos que se muestran una vez por grupo.
// Última escritura gana a nivel de registro.
type CommonFields struct {
	Supplier      string `json:"supplier,omitempty" bson:"supplier,omitempty"`
	ProductName   string `json:"product_name,omitempty" bson:"product_name,omitempty"`
	PartName      string `json:"part_name,omitempty" bson:"part_name,omitempty"`
	Material      string `json:"material,omitempty" bson:"material,omitempty"`
	Color         string `json:"color,omitempty" bson:"color,omitempty"`
	OrderQuantity int    `json:"order_quantity,omitempty" bson:"order_quantity,omitempty"`
	Specification string `json:"specification,omitempty" bson:"specification,omitempty"`
	PostProcess   string `json:"post_process,omitempty" bson:"post_process,omitempty"`
	WorkLine      string `json:"work_line,omitempty" bson:"work_line,omitempty"`
	DisplayID     string `json:"display_id,omitempty" bson:"display_id,omitempty"`
}

// FillBlanks copia desde src los campos que están vacíos en c.
// DisplayID nunca se copia: es propio de cada registro.
func (c *CommonFields) FillBlanks(src CommonFields) {
	if c.Supplier == "" {
		c.Supplier = src.Supplier
	}
	if c.ProductName == "" {
		c.ProductName = src.ProductName
	}
	if c.PartName == "" {
		c.PartName = src.PartName
	}
	if c.Material == "" {
		c.Material = src.Material
	}
	if c.Color == "" {
		c.Color = src.Color
	}
	if c.OrderQuantity == 0 {
		c.OrderQuantity = src.OrderQuantity
	}
	if c.Specification == "" {
		c.Specification = src.Specification
	}
	if c.PostProcess == "" {
		c.PostProcess = src.PostProcess
	}
	if c.WorkLine == "" {
		c.WorkLine = src.WorkLine
	}
}

// HistoryEntry transición del ciclo de vida de un registro.
type HistoryEntry struct {
	Status string    `json:"status" bson:"status"`
	Date   time.Time `json:"date" bson:"date"`
	User   string    `json:"user" bson:"user"`
	Reason string    `json:"reason,omitempty" bson:"reason,omitempty"`
}

// Comment comentario adjunto a un registro.
type Comment struct {
	Date   time.Time `json:"date" bson:"date"`
	Author string    `json:"author" bson:"author"`
	Text   string    `json:"text" bson:"text"`
}

// IncomingDetails datos propios de la inspección de recepción.
type IncomingDetails struct {
	LotNumber        string `json:"lot_number,omitempty" bson:"lot_number,omitempty"`
	ReceivedQuantity int    `json:"received_quantity" bson:"received_quantity"`
	SampleSize       int    `json:"sample_size" bson:"sample_size"`
	DefectQuantity   int    `json:"defect_quantity" bson:"defect_quantity"`
}

// InProcessDetails datos propios de la inspección en proceso.
type InProcessDetails struct {
	ProcessStep     string `json:"process_step,omitempty" bson:"process_step,omitempty"`
	Worker          string `json:"worker,omitempty" bson:"worker,omitempty"`
	CheckedQuantity int    `json:"checked_quantity" bson:"checked_quantity"`
	DefectQuantity  int    `json:"defect_quantity" bson:"defect_quantity"`
}

// OutgoingDetails datos propios de la inspección de despacho.
type OutgoingDetails struct {
	Customer         string     `json:"customer,omitempty" bson:"customer,omitempty"`
	ShipmentQuantity int        `json:"shipment_quantity" bson:"shipment_quantity"`
	DefectQuantity   int        `json:"defect_quantity" bson:"defect_quantity"`
	ShippingDate     *time.Time `json:"shipping_date,omitempty" bson:"shipping_date,omitempty"`
}

// PhaseDetails carga variante por fase: exactamente uno de los punteros debe
// estar presente y coincidir con InspectionRecord.Phase.
type PhaseDetails struct {
	Incoming  *IncomingDetails  `json:"incoming,omitempty" bson:"incoming,omitempty"`
	InProcess *InProcessDetails `json:"in_process,omitempty" bson:"in_process,omitempty"`
	Outgoing  *OutgoingDetails  `json:"outgoing,omitempty" bson:"outgoing,omitempty"`
}

// Phase devuelve la fase de la variante presente, o "" si hay cero o más de una.
func (d PhaseDetails) Phase() Phase {
	var found Phase
	n := 0
	if d.Incoming != nil {
		found = PhaseIncoming
		n++
	}
	if d.InProcess != nil {
		found = PhaseInProcess
		n++
	}
	if d.Outgoing != nil {
		found = PhaseOutgoing
		n++
	}
	if n != 1 {
		return ""
	}
	return found
}

// DefectQuantity cantidad defectuosa de la variante presente.
func (d PhaseDetails) DefectQuantity() int {
	switch {
	case d.Incoming != nil:
		return d.Incoming.DefectQuantity
	case d.InProcess != nil:
		return d.InProcess.DefectQuantity
	case d.Outgoing != nil:
		return d.Outgoing.DefectQuantity
	}
	return 0
}

// InspectionRecord un evento de inspección de calidad.
type InspectionRecord struct {
	ID             string         `json:"id" bson:"_id"`
	OrderNumber    string         `json:"order_number" bson:"order_number"`
	Phase          Phase          `json:"inspection_type" bson:"inspection_type"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
	InspectionDate *time.Time     `json:"inspection_date,omitempty" bson:"inspection_date,omitempty"`
	Common         CommonFields   `json:"common" bson:"common"`
	Result         string         `json:"result" bson:"result"`
	Urgent         bool           `json:"urgent" bson:"urgent"`
	Inspector      string         `json:"inspector,omitempty" bson:"inspector,omitempty"`
	DefectType     string         `json:"defect_type,omitempty" bson:"defect_type,omitempty"`
	FailureReason  string         `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	Details        PhaseDetails   `json:"details" bson:"details"`
	History        []HistoryEntry `json:"history" bson:"history"`
	Comments       []Comment      `json:"comments" bson:"comments"`
	ImageURLs      []string       `json:"image_urls" bson:"image_urls"`
}

// Validate verifica las invariantes de forma del registro.
func (r *InspectionRecord) Validate() error {
	if !r.Phase.Valid() {
		return fmt.Errorf("%w: inspection_type %q desconocido", domain.ErrInvalidInput, r.Phase)
	}
	if r.Details.Phase() != r.Phase {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrPhaseMismatch)
	}
	if !ValidResult(r.Result) {
		return fmt.Errorf("%w: result %q desconocido", domain.ErrInvalidInput, r.Result)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrInvalidTimestamp)
	}
	return nil
}

// IsDraft informa si el registro no está vinculado a una orden.
func (r *InspectionRecord) IsDraft() bool {
	return IsDraftOrderNumber(r.OrderNumber)
}

// EffectiveDate fecha de negocio: InspectionDate si existe, si no CreatedAt.
func (r *InspectionRecord) EffectiveDate() time.Time {
	if r.InspectionDate != nil && !r.InspectionDate.IsZero() {
		return *r.InspectionDate
	}
	return r.CreatedAt
}

// Worker operario asociado (solo inspección en proceso).
func (r *InspectionRecord) Worker() string {
	if r.Details.InProcess != nil {
		return r.Details.InProcess.Worker
	}
	return ""
}

// ParseTimestamp interpreta una marca ISO-8601 (RFC 3339, con o sin fracción).
// Vacío o mal formado devuelve ErrInvalidTimestamp: se rechaza al ingresar.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: vacía", domain.ErrInvalidTimestamp)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, s)
	}
	return t.UTC(), nil
}

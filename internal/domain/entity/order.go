package entity

import "time"

// Estados de una orden registrada.
const (
	OrderStatusRegistered   = "registered"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusClosed       = "closed"
)

// ValidOrderStatus informa si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusRegistered, OrderStatusInProduction, OrderStatusShipped, OrderStatusClosed:
		return true
	}
	return false
}

// Order orden de compra registrada. OrderNumber es la clave de negocio que
// agrupa las inspecciones de recepción, proceso y despacho.
type Order struct {
	ID            string
	OrderNumber   string // único; nunca el centinela "T"
	Customer      string
	ProductName   string
	PartName      string
	Material      string
	Color         string
	Quantity      int
	Specification string
	PostProcess   string
	DueDate       *time.Time
	Status        string // ver constantes OrderStatus*
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CommonFields datos descriptivos de la orden para precargar inspecciones.
func (o *Order) CommonFields() CommonFields {
	return CommonFields{
		ProductName:   o.ProductName,
		PartName:      o.PartName,
		Material:      o.Material,
		Color:         o.Color,
		OrderQuantity: o.Quantity,
		Specification: o.Specification,
		PostProcess:   o.PostProcess,
	}
}

package dto

import "time"

// CreateOrderRequest alta de una orden en el registro.
type CreateOrderRequest struct {
	OrderNumber   string     `json:"order_number" validate:"required,min=1,max=100"`
	Customer      string     `json:"customer"`
	ProductName   string     `json:"product_name"`
	PartName      string     `json:"part_name"`
	Material      string     `json:"material"`
	Color         string     `json:"color"`
	Quantity      int        `json:"quantity" validate:"min=0"`
	Specification string     `json:"specification"`
	PostProcess   string     `json:"post_process"`
	DueDate       *time.Time `json:"due_date"`
}

// UpdateOrderRequest edición parcial de una orden (el número no cambia).
type UpdateOrderRequest struct {
	Customer      *string    `json:"customer"`
	ProductName   *string    `json:"product_name"`
	PartName      *string    `json:"part_name"`
	Material      *string    `json:"material"`
	Color         *string    `json:"color"`
	Quantity      *int       `json:"quantity"`
	Specification *string    `json:"specification"`
	PostProcess   *string    `json:"post_process"`
	DueDate       *time.Time `json:"due_date"`
	Status        *string    `json:"status" validate:"omitempty,oneof=registered in_production shipped closed"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"order_number"`
	Customer      string     `json:"customer"`
	ProductName   string     `json:"product_name"`
	PartName      string     `json:"part_name"`
	Material      string     `json:"material"`
	Color         string     `json:"color"`
	Quantity      int        `json:"quantity"`
	Specification string     `json:"specification"`
	PostProcess   string     `json:"post_process"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

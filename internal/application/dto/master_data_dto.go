package dto

import "time"

// SupplierRequest alta/edición de proveedor.
type SupplierRequest struct {
	Name    string `json:"name" yaml:"name" validate:"required,min=1,max=200"`
	Contact string `json:"contact" yaml:"contact"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email" validate:"omitempty,email"`
	Notes   string `json:"notes" yaml:"notes"`
}

// SupplierResponse salida de proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartRequest alta/edición de pieza del catálogo.
type PartRequest struct {
	Code          string `json:"code" yaml:"code" validate:"required,min=1,max=100"`
	Name          string `json:"name" yaml:"name" validate:"required"`
	ProductName   string `json:"product_name" yaml:"product_name"`
	Material      string `json:"material" yaml:"material"`
	Color         string `json:"color" yaml:"color"`
	Specification string `json:"specification" yaml:"specification"`
	PostProcess   string `json:"post_process" yaml:"post_process"`
	SupplierID    string `json:"supplier_id" yaml:"supplier_id"`
}

// PartResponse salida de pieza.
type PartResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ProductName   string    `json:"product_name"`
	Material      string    `json:"material"`
	Color         string    `json:"color"`
	Specification string    `json:"specification"`
	PostProcess   string    `json:"post_process"`
	SupplierID    string    `json:"supplier_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WorkerRequest alta/edición de operario.
type WorkerRequest struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	WorkLine string `json:"work_line" yaml:"work_line"`
	Active   *bool  `json:"active" yaml:"active"`
}

// WorkerResponse salida de operario.
type WorkerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WorkLine  string    `json:"work_line"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package entity

import "time"

// Supplier proveedor de materiales o piezas (datos maestros).
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

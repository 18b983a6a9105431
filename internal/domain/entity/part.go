package entity

import "time"

// Part pieza o producto del catálogo (datos maestros). Code es único.
type Part struct {
	ID            string
	Code          string
	Name          string
	ProductName   string
	Material      string
	Color         string
	Specification string
	PostProcess   string
	SupplierID    string // opcional
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

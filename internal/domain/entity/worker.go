package entity

import "time"

// Worker operario de planta asignado a una línea.
type Worker struct {
	ID        string
	Name      string
	WorkLine  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

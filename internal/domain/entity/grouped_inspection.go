package entity

import "time"

// EpochSentinel valor inicial de LatestDate antes de agregar registros.
var EpochSentinel = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// GroupedInspection vista derivada por número de orden. Nunca se persiste;
// se recalcula desde cero cada vez que cambia el conjunto de registros.
type GroupedInspection struct {
	OrderNumber string             `json:"order_number"`
	LatestDate  time.Time          `json:"latest_date"`
	Common      CommonFields       `json:"common"`
	Incoming    []InspectionRecord `json:"incoming"`
	InProcess   []InspectionRecord `json:"in_process"`
	Outgoing    []InspectionRecord `json:"outgoing"`
	History     []HistoryEntry     `json:"history"`
	Comments    []Comment          `json:"comments"`
}

// Records devuelve todos los registros del grupo (recepción, proceso, despacho).
func (g *GroupedInspection) Records() []InspectionRecord {
	out := make([]InspectionRecord, 0, len(g.Incoming)+len(g.InProcess)+len(g.Outgoing))
	out = append(out, g.Incoming...)
	out = append(out, g.InProcess...)
	out = append(out, g.Outgoing...)
	return out
}

// Size cantidad total de registros del grupo.
func (g *GroupedInspection) Size() int {
	return len(g.Incoming) + len(g.InProcess) + len(g.Outgoing)
}

// Package quality contiene la lógica pura del centro de control de calidad:
// agrupación de inspecciones por número de orden y filtros sobre la vista agrupada.
// No realiza I/O.
package quality

import (
	"sort"
	"strings"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// Group pliega una lista plana de inspecciones en grupos por número de orden.
//
// Reglas:
//   - Los borradores ("T" o vacío) y los registros sin fase válida no
//     participan en ningún grupo.
//   - La clave es el número de orden sin espacios alrededor.
//   - Common y LatestDate vienen del registro con CreatedAt estrictamente mayor;
//     ante empate conserva el primero en el orden de entrada.
//   - Las listas por fase respetan el orden de entrada y nunca son nil.
//   - History y Comments se concatenan y se ordenan por fecha descendente.
//   - El resultado se ordena por LatestDate descendente.
//
// No modifica records.
func Group(records []entity.InspectionRecord) []entity.GroupedInspection {
	index := make(map[string]int)
	groups := make([]*entity.GroupedInspection, 0)

	for i := range records {
		rec := records[i]
		if !Groupable(rec) {
			continue
		}
		key := strings.TrimSpace(rec.OrderNumber)

		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, newGroup(key))
		}
		g := groups[pos]

		if rec.CreatedAt.After(g.LatestDate) {
			g.LatestDate = rec.CreatedAt
			g.Common = rec.Common
		}

		snapshot := cloneRecord(rec)
		snapshot.OrderNumber = key
		switch rec.Phase {
		case entity.PhaseIncoming:
			g.Incoming = append(g.Incoming, snapshot)
		case entity.PhaseInProcess:
			g.InProcess = append(g.InProcess, snapshot)
		case entity.PhaseOutgoing:
			g.Outgoing = append(g.Outgoing, snapshot)
		}

		g.History = append(g.History, rec.History...)
		g.Comments = append(g.Comments, rec.Comments...)
	}

	out := make([]entity.GroupedInspection, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.History, func(i, j int) bool {
			return g.History[i].Date.After(g.History[j].Date)
		})
		sort.SliceStable(g.Comments, func(i, j int) bool {
			return g.Comments[i].Date.After(g.Comments[j].Date)
		})
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestDate.After(out[j].LatestDate)
	})
	return out
}

func newGroup(orderNumber string) *entity.GroupedInspection {
	return &entity.GroupedInspection{
		OrderNumber: orderNumber,
		LatestDate:  entity.EpochSentinel,
		Incoming:    []entity.InspectionRecord{},
		InProcess:   []entity.InspectionRecord{},
		Outgoing:    []entity.InspectionRecord{},
		History:     []entity.HistoryEntry{},
		Comments:    []entity.Comment{},
	}
}

// Groupable indica si el registro entra en algún grupo: no es borrador y su fase es válida.
func Groupable(r entity.InspectionRecord) bool {
	return !r.IsDraft() && r.Phase.Valid()
}

// cloneRecord copia slices y carga de fase para que la vista no comparta
// memoria con la entrada.
func cloneRecord(r entity.InspectionRecord) entity.InspectionRecord {
	r.History = append([]entity.HistoryEntry(nil), r.History...)
	r.Comments = append([]entity.Comment(nil), r.Comments...)
	r.ImageURLs = append([]string(nil), r.ImageURLs...)
	if d := r.Details.Incoming; d != nil {
		c := *d
		r.Details.Incoming = &c
	}
	if d := r.Details.InProcess; d != nil {
		c := *d
		r.Details.InProcess = &c
	}
	if d := r.Details.Outgoing; d != nil {
		c := *d
		r.Details.Outgoing = &c
	}
	return r
}

// FindGroup busca el grupo de un número de orden.
func FindGroup(groups []entity.GroupedInspection, orderNumber string) (*entity.GroupedInspection, bool) {
	orderNumber = strings.TrimSpace(orderNumber)
	for i := range groups {
		if groups[i].OrderNumber == orderNumber {
			return &groups[i], true
		}
	}
	return nil, false
}

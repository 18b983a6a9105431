package quality

import (
	"strconv"
	"time"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/pkg/textsearch"
)

// Predicate criterio de filtrado sobre la vista agrupada.
type Predicate func(g *entity.GroupedInspection) bool

// Filter devuelve los grupos que cumplen todos los predicados, en el mismo orden.
// Sin predicados devuelve una copia de groups.
func Filter(groups []entity.GroupedInspection, preds ...Predicate) []entity.GroupedInspection {
	out := make([]entity.GroupedInspection, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		keep := true
		for _, p := range preds {
			if p != nil && !p(g) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, *g)
		}
	}
	return out
}

// anyRecord informa si algún registro del grupo cumple fn.
func anyRecord(g *entity.GroupedInspection, fn func(r *entity.InspectionRecord) bool) bool {
	for _, list := range [][]entity.InspectionRecord{g.Incoming, g.InProcess, g.Outgoing} {
		for i := range list {
			if fn(&list[i]) {
				return true
			}
		}
	}
	return false
}

// DateRange grupos con algún registro cuya fecha efectiva cae en [from, to].
// Un extremo cero queda abierto.
func DateRange(from, to time.Time) Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool {
			d := r.EffectiveDate()
			if !from.IsZero() && d.Before(from) {
				return false
			}
			if !to.IsZero() && d.After(to) {
				return false
			}
			return true
		})
	}
}

// Today grupos con actividad en el día de now (según su zona horaria).
func Today(now time.Time) Predicate {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return DateRange(start, end)
}

// Urgent grupos con al menos un registro marcado como urgente.
func Urgent() Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool { return r.Urgent })
	}
}

// Failed grupos con al menos una inspección rechazada.
func Failed() Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool { return r.Result == entity.ResultFail })
	}
}

// DefectKeyword grupos cuyo tipo de defecto contiene kw.
func DefectKeyword(kw string) Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool {
			return r.DefectType != "" && textsearch.Contains(r.DefectType, kw)
		})
	}
}

// ByWorker grupos donde el operario o el inspector contiene name.
func ByWorker(name string) Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool {
			return (r.Worker() != "" && textsearch.Contains(r.Worker(), name)) ||
				(r.Inspector != "" && textsearch.Contains(r.Inspector, name))
		})
	}
}

// FailureReason grupos con algún motivo de rechazo que contiene kw.
func FailureReason(kw string) Predicate {
	return func(g *entity.GroupedInspection) bool {
		return anyRecord(g, func(r *entity.InspectionRecord) bool {
			return r.FailureReason != "" && textsearch.Contains(r.FailureReason, kw)
		})
	}
}

// Search búsqueda de texto libre sobre todos los campos anidados del grupo.
func Search(query string) Predicate {
	return func(g *entity.GroupedInspection) bool {
		var ix textsearch.Index
		ix.Add(g.OrderNumber)
		addCommon(&ix, g.Common)
		anyRecord(g, func(r *entity.InspectionRecord) bool {
			addRecord(&ix, r)
			return false
		})
		for _, h := range g.History {
			ix.Add(h.Status, h.User, h.Reason)
		}
		for _, c := range g.Comments {
			ix.Add(c.Author, c.Text)
		}
		return ix.Match(query)
	}
}

func addCommon(ix *textsearch.Index, c entity.CommonFields) {
	ix.Add(c.Supplier, c.ProductName, c.PartName, c.Material, c.Color,
		c.Specification, c.PostProcess, c.WorkLine, c.DisplayID)
	if c.OrderQuantity != 0 {
		ix.Add(strconv.Itoa(c.OrderQuantity))
	}
}

func addRecord(ix *textsearch.Index, r *entity.InspectionRecord) {
	addCommon(ix, r.Common)
	ix.Add(r.ID, string(r.Phase), r.Result, r.Inspector, r.DefectType, r.FailureReason)
	d := r.Details
	if d.Incoming != nil {
		ix.Add(d.Incoming.LotNumber)
	}
	if d.InProcess != nil {
		ix.Add(d.InProcess.ProcessStep, d.InProcess.Worker)
	}
	if d.Outgoing != nil {
		ix.Add(d.Outgoing.Customer)
	}
}

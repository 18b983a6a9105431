package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/quality"
)

const dateOnly = "2006-01-02"

// BuildPredicates traduce los filtros de la petición a predicados de la vista.
// Fechas YYYY-MM-DD se interpretan en loc; "to" con solo fecha incluye el día completo.
func BuildPredicates(in dto.GroupFilterRequest, now time.Time, loc *time.Location) ([]quality.Predicate, error) {
	if loc == nil {
		loc = time.UTC
	}
	var preds []quality.Predicate

	from, err := parseBound(in.From, loc, false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(in.To, loc, true)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	if !from.IsZero() || !to.IsZero() {
		preds = append(preds, quality.DateRange(from, to))
	}
	if in.Today {
		preds = append(preds, quality.Today(now.In(loc)))
	}
	if in.Urgent {
		preds = append(preds, quality.Urgent())
	}
	if in.Failed {
		preds = append(preds, quality.Failed())
	}
	if s := strings.TrimSpace(in.Defect); s != "" {
		preds = append(preds, quality.DefectKeyword(s))
	}
	if s := strings.TrimSpace(in.Worker); s != "" {
		preds = append(preds, quality.ByWorker(s))
	}
	if s := strings.TrimSpace(in.Reason); s != "" {
		preds = append(preds, quality.FailureReason(s))
	}
	if s := strings.TrimSpace(in.Q); s != "" {
		preds = append(preds, quality.Search(s))
	}
	return preds, nil
}

func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dateOnly, s, loc); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (use YYYY-MM-DD o RFC 3339)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

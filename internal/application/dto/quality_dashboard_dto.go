package dto

import "github.com/shopspring/decimal"

// QualitySummaryDTO respuesta de GET /api/dashboard/summary.
type QualitySummaryDTO struct {
	Date         string         `json:"date"` // YYYY-MM-DD en la zona de la planta
	TotalGroups  int            `json:"total_groups"`
	TodayByPhase map[string]int `json:"today_by_phase"`
	TodayTotal   int            `json:"today_total"`
	TodayFailed  int            `json:"today_failed"`
	UrgentGroups int            `json:"urgent_groups"`
	OpenDrafts   int            `json:"open_drafts"`

	// Porcentaje de aprobadas sobre las resueltas (pass+fail) del día.
	PassRate   decimal.Decimal  `json:"pass_rate"`
	TopDefects []DefectCountDTO `json:"top_defects"`
}

// DefectCountDTO ocurrencias de un tipo de defecto.
type DefectCountDTO struct {
	DefectType string `json:"defect_type"`
	Count      int    `json:"count"`
}

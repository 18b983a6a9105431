package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

func TestGenerateGroupReport_ProducePDF(t *testing.T) {
	at := time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)
	grp := &entity.GroupedInspection{
		OrderNumber: "PO-1",
		LatestDate:  at,
		Common:      entity.CommonFields{ProductName: "Cover", Material: "ABS", OrderQuantity: 500},
		Incoming: []entity.InspectionRecord{{
			ID: "a", OrderNumber: "PO-1", Phase: entity.PhaseIncoming, CreatedAt: at, Result: entity.ResultPass,
			Common:  entity.CommonFields{DisplayID: "IQC-00001"},
			Details: entity.PhaseDetails{Incoming: &entity.IncomingDetails{LotNumber: "L1"}},
		}},
		InProcess: []entity.InspectionRecord{{
			ID: "b", OrderNumber: "PO-1", Phase: entity.PhaseInProcess, CreatedAt: at, Result: entity.ResultFail,
			Urgent: true, DefectType: "Scratch", FailureReason: "surface",
			Details: entity.PhaseDetails{InProcess: &entity.InProcessDetails{DefectQuantity: 3}},
		}},
		Outgoing: []entity.InspectionRecord{},
		History:  []entity.HistoryEntry{{Status: "created", Date: at, User: "kim"}},
		Comments: []entity.Comment{},
	}

	data, err := NewMarotoPDFGenerator(nil).GenerateGroupReport(grp, at)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "cabecera PDF")
}

func TestGenerateGroupReport_HistorialLargoSeTrunca(t *testing.T) {
	g := NewMarotoPDFGenerator(time.UTC)
	h := make([]entity.HistoryEntry, maxTrailRows+5)
	rows := g.historyRows(h)
	assert.Len(t, rows, maxTrailRows+1)
	assert.Len(t, g.historyRows(nil), 1)
	assert.Len(t, g.commentRows(nil), 1)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "OK", resultLabel(entity.ResultPass))
	assert.Equal(t, "NG", resultLabel(entity.ResultFail))
	assert.Equal(t, "RETENIDO", resultLabel(entity.ResultHold))
	assert.Equal(t, "PEND.", resultLabel(""))
}

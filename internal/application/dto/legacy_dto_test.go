package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

const legacyDoc = `{
	"id": "legacy-1",
	"orderNumber": "PO-77",
	"inspectionType": "outgoing",
	"createdAt": "2024-03-01T09:30:00.123+09:00",
	"productName": "Bracket",
	"displayId": "OQC-00012",
	"result": "fail",
	"defectType": "Dent",
	"details": {"customer": "Hyundai", "shipmentQuantity": 40, "defectQuantity": 2, "shippingDate": "2024-03-02T00:00:00Z"},
	"history": [{"status": "created", "date": "2024-03-01T00:30:00Z", "user": "lee"}],
	"comments": [{"date": "2024-03-01T01:00:00Z", "author": "lee", "text": "revisar"}]
}`

func TestLegacyInspection_ToRecord(t *testing.T) {
	var doc dto.LegacyInspection
	require.NoError(t, json.Unmarshal([]byte(legacyDoc), &doc))

	rec, err := doc.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, "legacy-1", rec.ID)
	assert.Equal(t, entity.PhaseOutgoing, rec.Phase)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 30, 0, 123000000, time.UTC), rec.CreatedAt)
	assert.Equal(t, "OQC-00012", rec.Common.DisplayID)
	require.NotNil(t, rec.Details.Outgoing)
	assert.Equal(t, "Hyundai", rec.Details.Outgoing.Customer)
	require.NotNil(t, rec.Details.Outgoing.ShippingDate)
	assert.Nil(t, rec.Details.Incoming)
	assert.Len(t, rec.History, 1)
	assert.Len(t, rec.Comments, 1)
	assert.NoError(t, rec.Validate())
}

func TestLegacyInspection_RechazaFechasInvalidas(t *testing.T) {
	cases := map[string]dto.LegacyInspection{
		"sin createdAt":   {InspectionType: "incoming"},
		"createdAt malo":  {InspectionType: "incoming", CreatedAt: "01/03/2024"},
		"historial malo":  {InspectionType: "incoming", CreatedAt: "2024-03-01T00:00:00Z", History: []dto.LegacyHistory{{Date: "ayer"}}},
		"comentario malo": {InspectionType: "incoming", CreatedAt: "2024-03-01T00:00:00Z", Comments: []dto.LegacyComment{{Date: ""}}},
		"updatedAt malo":  {InspectionType: "incoming", CreatedAt: "2024-03-01T00:00:00Z", UpdatedAt: "x"},
	}
	for name, doc := range cases {
		_, err := doc.ToRecord()
		assert.ErrorIs(t, err, domain.ErrInvalidTimestamp, name)
	}
}

func TestLegacyInspection_FaseDesconocidaSinDetalle(t *testing.T) {
	doc := dto.LegacyInspection{InspectionType: "final", CreatedAt: "2024-03-01T00:00:00Z"}
	rec, err := doc.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, entity.Phase(""), rec.Details.Phase())
	assert.ErrorIs(t, rec.Validate(), domain.ErrInvalidInput)
}

package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

func validRecord() entity.InspectionRecord {
	return entity.InspectionRecord{
		ID:          "r1",
		OrderNumber: "PO-1",
		Phase:       entity.PhaseIncoming,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Result:      entity.ResultPending,
		Details:     entity.PhaseDetails{Incoming: &entity.IncomingDetails{SampleSize: 5}},
	}
}

func TestValidate_RegistroCorrecto(t *testing.T) {
	r := validRecord()
	assert.NoError(t, r.Validate())
}

func TestValidate_FaseDesconocida(t *testing.T) {
	r := validRecord()
	r.Phase = "final"
	err := r.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_CargaNoCoincideConFase(t *testing.T) {
	r := validRecord()
	r.Details = entity.PhaseDetails{Outgoing: &entity.OutgoingDetails{}}
	err := r.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrPhaseMismatch)
}

func TestValidate_DosCargasSeRechazan(t *testing.T) {
	r := validRecord()
	r.Details.InProcess = &entity.InProcessDetails{}
	assert.ErrorIs(t, r.Validate(), domain.ErrPhaseMismatch)
}

func TestValidate_SinCreatedAt(t *testing.T) {
	r := validRecord()
	r.CreatedAt = time.Time{}
	assert.ErrorIs(t, r.Validate(), domain.ErrInvalidTimestamp)
}

func TestValidate_ResultadoDesconocido(t *testing.T) {
	r := validRecord()
	r.Result = "maybe"
	assert.ErrorIs(t, r.Validate(), domain.ErrInvalidInput)
}

func TestParseTimestamp(t *testing.T) {
	v, err := entity.ParseTimestamp("2024-05-01T19:00:00.123+09:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, v.Location())
	assert.Equal(t, 10, v.Hour())

	for _, bad := range []string{"", "  ", "ayer", "2024-13-01T00:00:00Z", "2024-05-01"} {
		_, err := entity.ParseTimestamp(bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidTimestamp), "entrada %q", bad)
	}
}

func TestIsDraftOrderNumber(t *testing.T) {
	assert.True(t, entity.IsDraftOrderNumber("T"))
	assert.True(t, entity.IsDraftOrderNumber(""))
	assert.True(t, entity.IsDraftOrderNumber(" T "))
	assert.False(t, entity.IsDraftOrderNumber("t"))
	assert.False(t, entity.IsDraftOrderNumber("PO-T"))
}

func TestEffectiveDate_PrefiereFechaDeNegocio(t *testing.T) {
	r := validRecord()
	assert.Equal(t, r.CreatedAt, r.EffectiveDate())

	biz := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	r.InspectionDate = &biz
	assert.Equal(t, biz, r.EffectiveDate())
}

func TestFillBlanks_NoCopiaDisplayID(t *testing.T) {
	c := entity.CommonFields{ProductName: "propio"}
	c.FillBlanks(entity.CommonFields{ProductName: "otro", Color: "rojo", OrderQuantity: 10, DisplayID: "IQC-00001"})
	assert.Equal(t, "propio", c.ProductName)
	assert.Equal(t, "rojo", c.Color)
	assert.Equal(t, 10, c.OrderQuantity)
	assert.Empty(t, c.DisplayID)
}

func TestPhaseDisplayPrefix(t *testing.T) {
	assert.Equal(t, "IQC", entity.PhaseIncoming.DisplayPrefix())
	assert.Equal(t, "PQC", entity.PhaseInProcess.DisplayPrefix())
	assert.Equal(t, "OQC", entity.PhaseOutgoing.DisplayPrefix())
}

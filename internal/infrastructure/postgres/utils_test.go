package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestNormalizePage(t *testing.T) {
	l, o := normalizePage(0, -5)
	assert.Equal(t, 100, l)
	assert.Equal(t, 0, o)
	l, o = normalizePage(1000, 20)
	assert.Equal(t, 100, l)
	assert.Equal(t, 20, o)
	l, _ = normalizePage(25, 0)
	assert.Equal(t, 25, l)
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	s := nullableString("abc")
	if assert.NotNil(t, s) {
		assert.Equal(t, "abc", *s)
	}
}

func TestSchema_TablasDelDominio(t *testing.T) {
	ddl := Schema()
	for _, table := range []string{"users", "orders", "production_reports", "suppliers", "parts", "workers", "device_tokens"} {
		assert.True(t, strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+table+" "), "falta tabla %s", table)
	}
	assert.NotContains(t, ddl, "inspections", "las inspecciones viven en MongoDB")
}

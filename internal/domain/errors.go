package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Inspecciones de calidad
	ErrSentinelOrder    = errors.New("el número de orden es un borrador (sin orden asignada)")
	ErrPhaseMismatch    = errors.New("los datos de la inspección no corresponden a su fase")
	ErrInvalidTimestamp = errors.New("marca de tiempo inválida")
	ErrOrderLocked      = errors.New("el número de orden solo puede cambiarse en borradores")
)

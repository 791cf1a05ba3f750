package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Censos
	ErrLocationAlreadyCensused = errors.New("la ubicación ya tiene un censo para ese año")
	ErrNoCensusesForYear       = errors.New("no hay censos para el año solicitado")
	ErrReportNotReady          = errors.New("el reporte no está listo para imprimir")
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidQuantity = errors.New("cantidad inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	// ErrBusy: ya hay un guardado o envío en curso para la misma lista.
	ErrBusy        = errors.New("operación en curso para esta lista")
	ErrTransport   = errors.New("fallo al comunicarse con el servicio de registros")
	ErrPersistence = errors.New("almacenamiento local no disponible")
)

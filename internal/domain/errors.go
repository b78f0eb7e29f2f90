package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidMovementType  = errors.New("tipo de movimiento inválido")
	ErrNegativeStock        = errors.New("el movimiento dejaría el stock en negativo")
	ErrCounterUnderflow     = errors.New("la cantidad a liberar supera la comprometida")
	ErrVisibilityTimeout    = errors.New("registro no visible tras agotar los reintentos")
	ErrDuplicateFulfillment = errors.New("ya existe un registro de despacho para la factura")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

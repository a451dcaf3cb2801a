package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrUnknownMedicine   = errors.New("medicamento no encontrado en el catálogo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	// ErrStockRaceLost: otra venta concurrente agotó el stock entre la
	// validación del carrito y el commit. El carrito queda intacto para que
	// el caller lo reconstruya con datos frescos y reintente la venta.
	ErrStockRaceLost = errors.New("stock agotado por una venta concurrente")
)

package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID int `json:"producto_id" validate:"required,min=1"`
	Cantidad   int `json:"cantidad"    validate:"required,min=1"`
	// PrecioEspecial overrides the catalog price for this line when present.
	PrecioEspecial *decimal.Decimal `json:"precio_especial"`
	Descuento      decimal.Decimal  `json:"descuento" validate:"min=0"`
	PromocionID    *int             `json:"promocion_id"`
}

type VentaRequest struct {
	ClienteID  *int               `json:"cliente_id"`
	EmpleadoID int                `json:"empleado_id" validate:"required,min=1"`
	MetodoPago string             `json:"metodo_pago" validate:"required"`
	Descuento  decimal.Decimal    `json:"descuento"   validate:"min=0"`
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	// ClienteEmail: optional — when present, the ticket worker mails the PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// VentaFilter is bound from the query string of GET /ventas.
type VentaFilter struct {
	Desde  string `form:"desde"`  // ISO datetime; empty = one month ago
	Hasta  string `form:"hasta"`  // ISO datetime; empty = now
	Estado string `form:"estado"` // COMPLETADA | ANULADA | PENDIENTE; empty = all
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// EmpleadoSimpleResponse and ClienteSimpleResponse are read-time views:
// names are resolved from the directories when the sale is read, so renames
// show up retroactively in historical sales.
type EmpleadoSimpleResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type ClienteSimpleResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type ItemVentaResponse struct {
	ProductoID     int             `json:"producto_id"`
	CodigoBarras   string          `json:"codigo_barras"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	PromocionID    *int            `json:"promocion_id,omitempty"`
}

type VentaResponse struct {
	ID             int                     `json:"id"`
	Cliente        *ClienteSimpleResponse  `json:"cliente,omitempty"`
	Empleado       EmpleadoSimpleResponse  `json:"empleado"`
	Fecha          string                  `json:"fecha"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	IVA            decimal.Decimal         `json:"iva"`
	Total          decimal.Decimal         `json:"total"`
	Descuento      decimal.Decimal         `json:"descuento"`
	Estado         string                  `json:"estado"`
	MetodoPago     string                  `json:"metodo_pago"`
	Items          []ItemVentaResponse     `json:"items"`
	NumeroTicket   *string                 `json:"numero_ticket"`
	ConflictoStock bool                    `json:"conflicto_stock"`
}

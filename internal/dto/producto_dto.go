package dto

import "github.com/shopspring/decimal"

type ProductoRequest struct {
	Nombre       string          `json:"nombre"       validate:"required"`
	Precio       decimal.Decimal `json:"precio"       validate:"required,gt=0"`
	Stock        int             `json:"stock"        validate:"min=0"`
	CategoriaID  int             `json:"categoria_id" validate:"required,min=1"`
	ProveedorID  int             `json:"proveedor_id" validate:"required,min=1"`
	CodigoBarras *string         `json:"codigo_barras"`
	ImagenURL    *string         `json:"imagen_url"`
}

// ProductoFilter is bound from the query string of GET /productos.
type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID int    `form:"categoria_id"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
}

type AjustarStockRequest struct {
	// Delta is a relative adjustment: positive = entrada, negative = salida.
	Delta int `json:"delta" validate:"required"`
}

type ProductoResponse struct {
	ID           int                      `json:"id"`
	Nombre       string                   `json:"nombre"`
	Precio       decimal.Decimal          `json:"precio"`
	Stock        int                      `json:"stock"`
	CodigoBarras *string                  `json:"codigo_barras"`
	ImagenURL    *string                  `json:"imagen_url"`
	Activo       bool                     `json:"activo"`
	Categoria    CategoriaSimpleResponse  `json:"categoria"`
	Proveedor    ProveedorSimpleResponse  `json:"proveedor"`
}

type ConsultaPrecioResponse struct {
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	CodigoBarras string          `json:"codigo_barras"`
}

package dto

import "github.com/shopspring/decimal"

type VentaSimpleResponse struct {
	ID         int             `json:"id"`
	Total      decimal.Decimal `json:"total"`
	Fecha      string          `json:"fecha"`
	MetodoPago string          `json:"metodo_pago"`
}

type ProductoVendidoResponse struct {
	ProductoID      int             `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	CantidadVendida int             `json:"cantidad_vendida"`
	TotalVendido    decimal.Decimal `json:"total_vendido"`
}

type ReporteDiarioResponse struct {
	Fecha                string                     `json:"fecha"`
	TotalVentas          decimal.Decimal            `json:"total_ventas"`
	CantidadVentas       int                        `json:"cantidad_ventas"`
	Ventas               []VentaSimpleResponse      `json:"ventas"`
	ProductosMasVendidos []ProductoVendidoResponse  `json:"productos_mas_vendidos"`
	MetodoPagos          map[string]decimal.Decimal `json:"metodo_pagos"`
}

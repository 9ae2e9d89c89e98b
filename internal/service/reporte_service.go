package service

import (
	"context"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/shopspring/decimal"
)

const topProductosLimite = 5

type ReporteService interface {
	// ReporteDiario summarizes the sales of one calendar day: totals, count,
	// per-payment-method breakdown and the top selling products.
	// Anulled sales are listed but excluded from all totals.
	ReporteDiario(ctx context.Context, fecha time.Time) (*dto.ReporteDiarioResponse, error)
}

type reporteService struct {
	ventaRepo repository.VentaRepository
}

func NewReporteService(ventaRepo repository.VentaRepository) ReporteService {
	return &reporteService{ventaRepo: ventaRepo}
}

func (s *reporteService) ReporteDiario(ctx context.Context, fecha time.Time) (*dto.ReporteDiarioResponse, error) {
	desde := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	hasta := desde.AddDate(0, 0, 1)

	ventas, err := s.ventaRepo.FindByDateRange(ctx, desde, hasta, "")
	if err != nil {
		return nil, apierror.Storage("error consultando ventas del dia", err)
	}

	reporte := &dto.ReporteDiarioResponse{
		Fecha:                desde.Format("2006-01-02"),
		TotalVentas:          decimal.Zero,
		Ventas:               make([]dto.VentaSimpleResponse, 0, len(ventas)),
		ProductosMasVendidos: []dto.ProductoVendidoResponse{},
		MetodoPagos:          map[string]decimal.Decimal{},
	}

	for _, v := range ventas {
		reporte.Ventas = append(reporte.Ventas, dto.VentaSimpleResponse{
			ID:         v.ID,
			Total:      v.Total,
			Fecha:      v.Fecha.Format(time.RFC3339),
			MetodoPago: v.MetodoPago,
		})
		if v.Estado == model.EstadoAnulada {
			continue
		}
		reporte.TotalVentas = reporte.TotalVentas.Add(v.Total)
		reporte.CantidadVentas++
		acumulado, ok := reporte.MetodoPagos[v.MetodoPago]
		if !ok {
			acumulado = decimal.Zero
		}
		reporte.MetodoPagos[v.MetodoPago] = acumulado.Add(v.Total)
	}

	top, err := s.ventaRepo.TopProductos(ctx, desde, hasta, topProductosLimite)
	if err != nil {
		return nil, apierror.Storage("error consultando productos mas vendidos", err)
	}
	for _, p := range top {
		reporte.ProductosMasVendidos = append(reporte.ProductosMasVendidos, dto.ProductoVendidoResponse{
			ProductoID:      p.ProductoID,
			Nombre:          p.Nombre,
			CantidadVendida: p.CantidadVendida,
			TotalVendido:    p.TotalVendido,
		})
	}
	return reporte, nil
}

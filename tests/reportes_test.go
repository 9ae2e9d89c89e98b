package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporteDiario(t *testing.T) {
	ventaSvc, ventaRepo, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	pa := seedProducto(productoRepo, "Cafe 250g", 10.00, 100)
	pb := seedProducto(productoRepo, "Azucar 1kg", 20.00, 100)

	registrar := func(metodo string, items []dto.ItemVentaRequest) *dto.VentaResponse {
		resp, err := ventaSvc.RegistrarVenta(context.Background(), dto.VentaRequest{
			EmpleadoID: emp.ID,
			MetodoPago: metodo,
			Items:      items,
		})
		require.NoError(t, err)
		return resp
	}

	// efectivo: 2×10 × 1.16 = 23.20 | tarjeta: 1×20 × 1.16 = 23.20
	registrar("EFECTIVO", []dto.ItemVentaRequest{{ProductoID: pa.ID, Cantidad: 2}})
	registrar("TARJETA", []dto.ItemVentaRequest{{ProductoID: pb.ID, Cantidad: 1}})
	// Anulled sale must not count towards any total
	anulada := registrar("EFECTIVO", []dto.ItemVentaRequest{{ProductoID: pa.ID, Cantidad: 5}})
	_, err := ventaSvc.AnularVenta(context.Background(), anulada.ID)
	require.NoError(t, err)

	reporteSvc := service.NewReporteService(ventaRepo)
	reporte, err := reporteSvc.ReporteDiario(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, reporte.CantidadVentas)
	assert.Equal(t, "46.4", reporte.TotalVentas.String())
	// All three sales appear in the listing, anulada included
	assert.Len(t, reporte.Ventas, 3)

	assert.True(t, reporte.MetodoPagos["EFECTIVO"].Equal(decimal.NewFromFloat(23.2)))
	assert.True(t, reporte.MetodoPagos["TARJETA"].Equal(decimal.NewFromFloat(23.2)))

	// Top products exclude the anulada lines: 2 cafes, 1 azucar
	cantidadPorProducto := map[int]int{}
	for _, p := range reporte.ProductosMasVendidos {
		cantidadPorProducto[p.ProductoID] = p.CantidadVendida
	}
	assert.Equal(t, 2, cantidadPorProducto[pa.ID])
	assert.Equal(t, 1, cantidadPorProducto[pb.ID])
}

func TestReporteDiario_SinVentas(t *testing.T) {
	_, ventaRepo, _, _, _ := buildVentaSvc()
	reporteSvc := service.NewReporteService(ventaRepo)

	reporte, err := reporteSvc.ReporteDiario(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, reporte.CantidadVentas)
	assert.True(t, reporte.TotalVentas.IsZero())
	assert.Empty(t, reporte.Ventas)
}

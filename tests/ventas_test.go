package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildVentaSvc() (service.VentaService, *stubVentaRepo, *stubProductoRepo, *stubEmpleadoRepo, *stubClienteRepo) {
	ventaRepo := newStubVentaRepo()
	productoRepo := newStubProductoRepo()
	empleadoRepo := newStubEmpleadoRepo()
	clienteRepo := newStubClienteRepo()
	svc := service.NewVentaService(
		ventaRepo, productoRepo, empleadoRepo, clienteRepo,
		nil, // no dispatcher in unit tests
		decimal.NewFromFloat(0.16),
		"T",
	)
	return svc, ventaRepo, productoRepo, empleadoRepo, clienteRepo
}

func seedEmpleado(repo *stubEmpleadoRepo, nombre string) *model.Empleado {
	e := &model.Empleado{Nombre: nombre, Usuario: nombre, Rol: "cajero"}
	_ = repo.Create(context.Background(), e)
	return e
}

func seedProducto(repo *stubProductoRepo, nombre string, precio float64, stock int) *model.Producto {
	barcode := "779" + nombre
	p := &model.Producto{
		Nombre:       nombre,
		Precio:       decimal.NewFromFloat(precio),
		Stock:        stock,
		CategoriaID:  1,
		ProveedorID:  1,
		CodigoBarras: &barcode,
		Activo:       true,
	}
	_ = repo.Create(context.Background(), p)
	return p
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────

func TestRegistrarVenta_TotalesYStock(t *testing.T) {
	svc, ventaRepo, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	pa := seedProducto(productoRepo, "Cafe 250g", 10.00, 5)
	pb := seedProducto(productoRepo, "Azucar 1kg", 20.00, 3)

	resp, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items: []dto.ItemVentaRequest{
			{ProductoID: pa.ID, Cantidad: 2},
			{ProductoID: pb.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)

	// subtotal = 2×10 + 1×20 = 40; IVA 16% = 6.40; total = 46.40
	assert.Equal(t, "40", resp.Subtotal.String())
	assert.Equal(t, "6.4", resp.IVA.String())
	assert.Equal(t, "46.4", resp.Total.String())
	assert.Equal(t, model.EstadoCompletada, resp.Estado)
	assert.False(t, resp.ConflictoStock)

	// Stock decremented atomically inside the sale
	assert.Equal(t, 3, productoRepo.productos[pa.ID].Stock)
	assert.Equal(t, 2, productoRepo.productos[pb.ID].Stock)

	// Ticket number derives from the assigned id and year
	require.NotNil(t, resp.NumeroTicket)
	esperado := "T-1-" + time.Now().Format("2006")
	assert.Equal(t, esperado, *resp.NumeroTicket)

	stored, err := ventaRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, "10", stored.Items[0].PrecioUnitario.String())
}

func TestRegistrarVenta_SinItems(t *testing.T) {
	svc, ventaRepo, _, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")

	_, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items:      nil,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVenta_CantidadInvalida(t *testing.T) {
	svc, _, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Leche 1L", 15.00, 10)

	_, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Equal(t, 10, productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVenta_ProductoInexistente(t *testing.T) {
	svc, ventaRepo, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Pan lactal", 8.00, 6)

	// One valid line + one pointing to a missing product: nothing may persist
	_, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "TARJETA",
		Items: []dto.ItemVentaRequest{
			{ProductoID: p.ID, Cantidad: 2},
			{ProductoID: 999, Cantidad: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	assert.Empty(t, ventaRepo.ventas)
	assert.Equal(t, 6, productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVenta_EmpleadoInexistente(t *testing.T) {
	svc, _, productoRepo, _, _ := buildVentaSvc()
	p := seedProducto(productoRepo, "Yerba 500g", 30.00, 4)

	_, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: 42,
		MetodoPago: "EFECTIVO",
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestRegistrarVenta_PrecioEspecial(t *testing.T) {
	svc, _, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Queso 400g", 50.00, 10)

	especial := decimal.NewFromFloat(35.00)
	resp, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items: []dto.ItemVentaRequest{
			{ProductoID: p.ID, Cantidad: 2, PrecioEspecial: &especial},
		},
	})
	require.NoError(t, err)

	// The override is snapshotted onto the line; the catalog price is untouched
	assert.Equal(t, "70", resp.Subtotal.String())
	assert.Equal(t, "35", resp.Items[0].PrecioUnitario.String())
	assert.Equal(t, "50", productoRepo.productos[p.ID].Precio.String())
}

func TestRegistrarVenta_DescuentoExcesivo(t *testing.T) {
	svc, ventaRepo, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Chicles", 5.00, 20)

	_, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Descuento:  decimal.NewFromFloat(100.00), // total would go negative
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Empty(t, ventaRepo.ventas)
	assert.Equal(t, 20, productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVenta_StockInsuficiente(t *testing.T) {
	svc, _, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Vino 750ml", 100.00, 2)

	// The sale goes through flagged, never rejected: the cashier has the
	// physical unit in hand even if the system count lags.
	resp, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 5}},
	})
	require.NoError(t, err)
	assert.True(t, resp.ConflictoStock)
	assert.Equal(t, -3, productoRepo.productos[p.ID].Stock)
}

func TestRegistrarVenta_ConCliente(t *testing.T) {
	svc, _, productoRepo, empleadoRepo, clienteRepo := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Galletas", 12.00, 8)
	cli := &model.Cliente{Nombre: "Carlos"}
	require.NoError(t, clienteRepo.Create(context.Background(), cli))

	resp, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		ClienteID:  &cli.ID,
		EmpleadoID: emp.ID,
		MetodoPago: "TARJETA",
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Cliente)
	assert.Equal(t, "Carlos", resp.Cliente.Nombre)
}

// ── AnularVenta ───────────────────────────────────────────────────────────────

func TestAnularVenta_RestauraStockYEsIdempotente(t *testing.T) {
	svc, ventaRepo, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	pa := seedProducto(productoRepo, "Cafe 250g", 10.00, 5)
	pb := seedProducto(productoRepo, "Azucar 1kg", 20.00, 3)

	venta, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
		EmpleadoID: emp.ID,
		MetodoPago: "EFECTIVO",
		Items: []dto.ItemVentaRequest{
			{ProductoID: pa.ID, Cantidad: 2},
			{ProductoID: pb.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, productoRepo.productos[pa.ID].Stock)
	require.Equal(t, 2, productoRepo.productos[pb.ID].Stock)

	// First anulación restores stock and flips the estado
	resp, err := svc.AnularVenta(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAnulada, resp.Estado)
	assert.Equal(t, 5, productoRepo.productos[pa.ID].Stock)
	assert.Equal(t, 3, productoRepo.productos[pb.ID].Stock)

	// Second anulación is a no-op: same response, stock untouched
	resp2, err := svc.AnularVenta(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAnulada, resp2.Estado)
	assert.Equal(t, 5, productoRepo.productos[pa.ID].Stock)
	assert.Equal(t, 3, productoRepo.productos[pb.ID].Stock)

	stored, _ := ventaRepo.FindByID(context.Background(), venta.ID)
	assert.Equal(t, model.EstadoAnulada, stored.Estado)
	// Line snapshots stay immutable through the anulación
	assert.Equal(t, "10", stored.Items[0].PrecioUnitario.String())
}

func TestAnularVenta_Inexistente(t *testing.T) {
	svc, _, _, _, _ := buildVentaSvc()
	_, err := svc.AnularVenta(context.Background(), 777)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

// ── ListarVentas / ObtenerVenta ───────────────────────────────────────────────

func TestListarVentas_RangoYEstado(t *testing.T) {
	svc, _, productoRepo, empleadoRepo, _ := buildVentaSvc()
	emp := seedEmpleado(empleadoRepo, "Ana")
	p := seedProducto(productoRepo, "Arroz 1kg", 25.00, 50)

	registrar := func() *dto.VentaResponse {
		resp, err := svc.RegistrarVenta(context.Background(), dto.VentaRequest{
			EmpleadoID: emp.ID,
			MetodoPago: "EFECTIVO",
			Items:      []dto.ItemVentaRequest{{ProductoID: p.ID, Cantidad: 1}},
		})
		require.NoError(t, err)
		return resp
	}
	v1 := registrar()
	registrar()
	_, err := svc.AnularVenta(context.Background(), v1.ID)
	require.NoError(t, err)

	desde := time.Now().Add(-time.Hour)
	hasta := time.Now().Add(time.Hour)

	todas, err := svc.ListarVentas(context.Background(), desde, hasta, "")
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	// The estado filter normalizes case
	anuladas, err := svc.ListarVentas(context.Background(), desde, hasta, "anulada")
	require.NoError(t, err)
	require.Len(t, anuladas, 1)
	assert.Equal(t, v1.ID, anuladas[0].ID)

	// Out-of-range window returns empty, not error
	vacio, err := svc.ListarVentas(context.Background(), desde.AddDate(0, 0, -7), desde, "")
	require.NoError(t, err)
	assert.Empty(t, vacio)
}

func TestObtenerVenta_Inexistente(t *testing.T) {
	svc, _, _, _, _ := buildVentaSvc()
	_, err := svc.ObtenerVenta(context.Background(), 123)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

package tests

import (
	"context"
	"strings"
	"time"

	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Services run their transactions through
// repo.DB(), which returns nil here, so runTx executes the body directly.

// ── stubVentaRepo ─────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[int]*model.Venta
	seq    int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[int]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.seq++
	v.ID = r.seq
	for i := range v.Items {
		v.Items[i].ID = i + 1
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id int) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindByDateRange(_ context.Context, desde, hasta time.Time, estado string) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Fecha.Before(desde) || !v.Fecha.Before(hasta) {
			continue
		}
		if estado != "" && v.Estado != strings.ToUpper(estado) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id int, desde, hacia string) (int64, error) {
	v, ok := r.ventas[id]
	if !ok || v.Estado != desde {
		return 0, nil
	}
	v.Estado = hacia
	return 1, nil
}

func (r *stubVentaRepo) UpdateNumeroTicketTx(_ *gorm.DB, id int, numero string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.NumeroTicket = &numero
	return nil
}

func (r *stubVentaRepo) TopProductos(_ context.Context, desde, hasta time.Time, limite int) ([]repository.ProductoVendido, error) {
	acum := map[int]*repository.ProductoVendido{}
	for _, v := range r.ventas {
		if v.Fecha.Before(desde) || !v.Fecha.Before(hasta) || v.Estado == model.EstadoAnulada {
			continue
		}
		for _, item := range v.Items {
			pv, ok := acum[item.ProductoID]
			if !ok {
				pv = &repository.ProductoVendido{ProductoID: item.ProductoID, TotalVendido: decimal.Zero}
				acum[item.ProductoID] = pv
			}
			pv.CantidadVendida += item.Cantidad
			pv.TotalVendido = pv.TotalVendido.Add(item.Subtotal)
		}
	}
	var out []repository.ProductoVendido
	for _, pv := range acum {
		out = append(out, *pv)
		if len(out) >= limite {
			break
		}
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── stubProductoRepo ──────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[int]*model.Producto
	seq       int
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[int]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.seq++
	p.ID = r.seq
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		switch filter.Activo {
		case "false":
			if p.Activo {
				continue
			}
		case "all":
		default:
			if !p.Activo {
				continue
			}
		}
		if filter.Nombre != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filter.Nombre)) {
			continue
		}
		if filter.CategoriaID > 0 && p.CategoriaID != filter.CategoriaID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) ActualizarPrecio(_ context.Context, id int, precio decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Precio = precio
	return nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id int, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id int, delta int) error {
	return r.UpdateStockTx(nil, id, delta)
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── stubEmpleadoRepo ──────────────────────────────────────────────────────────

type stubEmpleadoRepo struct {
	empleados map[int]*model.Empleado
	seq       int
}

func newStubEmpleadoRepo() *stubEmpleadoRepo {
	return &stubEmpleadoRepo{empleados: make(map[int]*model.Empleado)}
}

func (r *stubEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	r.seq++
	e.ID = r.seq
	r.empleados[e.ID] = e
	return nil
}

func (r *stubEmpleadoRepo) FindByID(_ context.Context, id int) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEmpleadoRepo) FindByUsuario(_ context.Context, usuario string) (*model.Empleado, error) {
	for _, e := range r.empleados {
		if e.Usuario == usuario {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpleadoRepo) List(_ context.Context) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmpleadoRepo) Update(_ context.Context, e *model.Empleado) error {
	r.empleados[e.ID] = e
	return nil
}

func (r *stubEmpleadoRepo) Delete(_ context.Context, id int) error {
	delete(r.empleados, id)
	return nil
}

var _ repository.EmpleadoRepository = (*stubEmpleadoRepo)(nil)

// ── stubClienteRepo ───────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[int]*model.Cliente
	seq      int
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[int]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.seq++
	c.ID = r.seq
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id int) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id int) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── stubTokenRepo ─────────────────────────────────────────────────────────────

type stubTokenRepo struct {
	tokens map[string]*model.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*model.Token)}
}

func (r *stubTokenRepo) Guardar(_ context.Context, t *model.Token) error {
	r.tokens[t.Token] = t
	return nil
}

func (r *stubTokenRepo) Validar(_ context.Context, token string) (bool, error) {
	t, ok := r.tokens[token]
	return ok && t.Expiracion.After(time.Now()), nil
}

func (r *stubTokenRepo) Eliminar(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *stubTokenRepo) EliminarExpirados(_ context.Context, ahora time.Time) (int64, error) {
	var n int64
	for k, t := range r.tokens {
		if t.Expiracion.Before(ahora) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

var _ repository.TokenRepository = (*stubTokenRepo)(nil)

// ── stubCategoriaRepo / stubProveedorRepo ─────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[int]*model.Categoria
	seq        int
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[int]*model.Categoria)}
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	r.seq++
	c.ID = r.seq
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id int) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) FindByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id int) error {
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubProveedorRepo struct {
	proveedores map[int]*model.Proveedor
	seq         int
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[int]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	r.seq++
	p.ID = r.seq
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id int) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if !incluirInactivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id int) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

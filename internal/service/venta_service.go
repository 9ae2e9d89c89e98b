package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"
	"github.com/Joan074/SellPoint/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.VentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id int) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, desde, hasta time.Time, estado string) ([]dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id int) (*dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	empleadoRepo repository.EmpleadoRepository
	clienteRepo  repository.ClienteRepository
	dispatcher   *worker.Dispatcher
	ivaRate      decimal.Decimal
	ticketPrefix string
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	empleadoRepo repository.EmpleadoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
	ivaRate decimal.Decimal,
	ticketPrefix string,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		empleadoRepo: empleadoRepo,
		clienteRepo:  clienteRepo,
		dispatcher:   dispatcher,
		ivaRate:      ivaRate,
		ticketPrefix: ticketPrefix,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFoundOr keeps the error taxonomy honest: a missing row is a client
// error, anything else stays a storage failure.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg)
	}
	return apierror.Storage(msg, err)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Full ACID sale:
//   1. Validate request shape (items, cantidades, metodo de pago, descuento)
//   2. Resolve empleado and (optional) cliente
//   3. Resolve every producto and compute totals — all BEFORE any write, so a
//      bad line aborts the sale with zero visible trace
//   4. BEGIN TX: insert header+items, decrement stock per line (atomic
//      relative UPDATE), derive and persist numero de ticket
//   5. COMMIT
//   6. (async) dispatch ticket PDF job

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.VentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Validation("la venta debe tener al menos un item")
	}
	if req.MetodoPago == "" {
		return nil, apierror.Validation("metodo de pago requerido")
	}
	if req.Descuento.IsNegative() {
		return nil, apierror.Validation("el descuento no puede ser negativo")
	}
	for _, item := range req.Items {
		if item.Cantidad <= 0 {
			return nil, apierror.Validation(fmt.Sprintf("cantidad invalida para el producto %d", item.ProductoID))
		}
	}

	// 2. Resolve parties
	empleado, err := s.empleadoRepo.FindByID(ctx, req.EmpleadoID)
	if err != nil {
		return nil, notFoundOr(err, "empleado no encontrado")
	}
	var cliente *model.Cliente
	if req.ClienteID != nil {
		cliente, err = s.clienteRepo.FindByID(ctx, *req.ClienteID)
		if err != nil {
			return nil, notFoundOr(err, "cliente no encontrado")
		}
	}

	// 3. Resolve products and calculate totals (pre-flight, outside TX)
	type resolvedItem struct {
		productoID   int
		nombre       string
		codigoBarras string
		precio       decimal.Decimal
		cantidad     int
		descuento    decimal.Decimal
		promocionID  *int
		subtotal     decimal.Decimal
		iva          decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero
	totalIVA := decimal.Zero
	conflictoStock := false

	for _, item := range req.Items {
		p, err := s.productoRepo.FindByID(ctx, item.ProductoID)
		if err != nil {
			return nil, notFoundOr(err, fmt.Sprintf("producto %d no encontrado", item.ProductoID))
		}
		if p.Stock < item.Cantidad {
			conflictoStock = true
		}
		// Precio especial takes precedence over the catalog price; the chosen
		// value is snapshotted onto the line.
		precio := p.Precio
		if item.PrecioEspecial != nil {
			precio = *item.PrecioEspecial
		}
		lineSubtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		lineIVA := lineSubtotal.Mul(s.ivaRate)

		subtotal = subtotal.Add(lineSubtotal)
		totalIVA = totalIVA.Add(lineIVA)

		codigoBarras := ""
		if p.CodigoBarras != nil {
			codigoBarras = *p.CodigoBarras
		}
		resolved = append(resolved, resolvedItem{
			productoID:   p.ID,
			nombre:       p.Nombre,
			codigoBarras: codigoBarras,
			precio:       precio,
			cantidad:     item.Cantidad,
			descuento:    item.Descuento,
			promocionID:  item.PromocionID,
			subtotal:     lineSubtotal,
			iva:          lineIVA,
		})
	}

	total := subtotal.Add(totalIVA).Sub(req.Descuento)
	if total.IsNegative() {
		return nil, apierror.Validation("el descuento no puede superar el total de la venta")
	}

	// 4. ACID transaction
	fechaAhora := time.Now()
	var numeroTicket string
	venta := model.Venta{
		ClienteID:      req.ClienteID,
		EmpleadoID:     req.EmpleadoID,
		Fecha:          fechaAhora,
		Subtotal:       subtotal,
		IVA:            totalIVA,
		Total:          total,
		Descuento:      req.Descuento,
		Estado:         model.EstadoCompletada,
		MetodoPago:     req.MetodoPago,
		ConflictoStock: conflictoStock,
	}
	for _, r := range resolved {
		venta.Items = append(venta.Items, model.DetalleVenta{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
			IVA:            r.iva,
			Descuento:      r.descuento,
			PromocionID:    r.promocionID,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return apierror.Storage("error registrando la venta", err)
		}

		for _, r := range resolved {
			if err := s.productoRepo.UpdateStockTx(tx, r.productoID, -r.cantidad); err != nil {
				return apierror.Storage(fmt.Sprintf("error descontando stock de %s", r.nombre), err)
			}
		}

		// Ticket number needs the assigned id, so it is a second statement
		// inside the same transaction.
		numeroTicket = fmt.Sprintf("%s-%d-%d", s.ticketPrefix, venta.ID, fechaAhora.Year())
		if err := s.repo.UpdateNumeroTicketTx(tx, venta.ID, numeroTicket); err != nil {
			return apierror.Storage("error asignando numero de ticket", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	venta.NumeroTicket = &numeroTicket

	// 6. Async ticket PDF (best-effort — fire & forget)
	if s.dispatcher != nil {
		payload := worker.TicketJobPayload{VentaID: venta.ID}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload.ClienteEmail = *req.ClienteEmail
		}
		_ = s.dispatcher.EnqueueTicket(ctx, payload)
	}

	// Build response from the resolved snapshot — no re-read needed.
	resp := &dto.VentaResponse{
		ID:             venta.ID,
		Empleado:       dto.EmpleadoSimpleResponse{ID: empleado.ID, Nombre: empleado.Nombre},
		Fecha:          fechaAhora.Format(time.RFC3339),
		Subtotal:       subtotal,
		IVA:            totalIVA,
		Total:          total,
		Descuento:      req.Descuento,
		Estado:         model.EstadoCompletada,
		MetodoPago:     req.MetodoPago,
		NumeroTicket:   &numeroTicket,
		ConflictoStock: conflictoStock,
	}
	if cliente != nil {
		resp.Cliente = &dto.ClienteSimpleResponse{ID: cliente.ID, Nombre: cliente.Nombre}
	}
	for _, r := range resolved {
		resp.Items = append(resp.Items, dto.ItemVentaResponse{
			ProductoID:     r.productoID,
			CodigoBarras:   r.codigoBarras,
			Nombre:         r.nombre,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Descuento:      r.descuento,
			Subtotal:       r.subtotal,
			PromocionID:    r.promocionID,
		})
	}
	return resp, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Idempotent reversal: an already-anulada sale is returned unchanged, with no
// stock mutation. Otherwise the estado flip and every compensating stock
// increment commit as one unit; the flip is guarded by an optimistic check on
// the estado read before the transaction, so two concurrent anulaciones
// cannot both compensate stock.

func (s *ventaService) AnularVenta(ctx context.Context, id int) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "venta no encontrada")
	}
	if venta.Estado == model.EstadoAnulada {
		return construirVentaResponse(venta), nil
	}
	estadoLeido := venta.Estado

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.repo.UpdateEstadoTx(tx, id, estadoLeido, model.EstadoAnulada)
		if err != nil {
			return apierror.Storage("error anulando la venta", err)
		}
		if n == 0 {
			return apierror.Conflict("la venta fue modificada por otra operacion")
		}
		// Quantities come from the recorded lines, never re-derived.
		for _, item := range venta.Items {
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return apierror.Storage("error restaurando stock", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	actualizada, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Storage("error releyendo la venta", err)
	}
	return construirVentaResponse(actualizada), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, desde, hasta time.Time, estado string) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.FindByDateRange(ctx, desde, hasta, estado)
	if err != nil {
		return nil, apierror.Storage("error listando ventas", err)
	}
	result := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		result = append(result, *construirVentaResponse(&ventas[i]))
	}
	return result, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id int) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "venta no encontrada")
	}
	return construirVentaResponse(venta), nil
}

// construirVentaResponse maps a loaded Venta (with associations) to its
// response. Names come from the joined rows, so a renamed empleado or cliente
// is reflected retroactively in historical sales.
func construirVentaResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:             v.ID,
		Fecha:          v.Fecha.Format(time.RFC3339),
		Subtotal:       v.Subtotal,
		IVA:            v.IVA,
		Total:          v.Total,
		Descuento:      v.Descuento,
		Estado:         v.Estado,
		MetodoPago:     v.MetodoPago,
		NumeroTicket:   v.NumeroTicket,
		ConflictoStock: v.ConflictoStock,
	}
	if v.Empleado != nil {
		resp.Empleado = dto.EmpleadoSimpleResponse{ID: v.Empleado.ID, Nombre: v.Empleado.Nombre}
	}
	if v.Cliente != nil {
		resp.Cliente = &dto.ClienteSimpleResponse{ID: v.Cliente.ID, Nombre: v.Cliente.Nombre}
	}
	for _, item := range v.Items {
		nombre := ""
		codigoBarras := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			if item.Producto.CodigoBarras != nil {
				codigoBarras = *item.Producto.CodigoBarras
			}
		}
		resp.Items = append(resp.Items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID,
			CodigoBarras:   codigoBarras,
			Nombre:         nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Descuento:      item.Descuento,
			Subtotal:       item.Subtotal,
			PromocionID:    item.PromocionID,
		})
	}
	return resp
}

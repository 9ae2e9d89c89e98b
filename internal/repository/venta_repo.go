package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Joan074/SellPoint/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoVendido is an aggregate row for the top-sellers report.
type ProductoVendido struct {
	ProductoID      int
	Nombre          string
	CantidadVendida int
	TotalVendido    decimal.Decimal
}

type VentaRepository interface {
	// Create inserts the header and all its line items (association insert).
	// Must be called with a live transaction.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id int) (*model.Venta, error)
	// FindByDateRange returns sales with fecha >= desde AND fecha < hasta.
	// estado filters exactly when non-empty (callers normalize to uppercase).
	FindByDateRange(ctx context.Context, desde, hasta time.Time, estado string) ([]model.Venta, error)
	// UpdateEstadoTx flips estado only when the stored value still matches
	// desde; the returned row count is the optimistic-check result.
	UpdateEstadoTx(tx *gorm.DB, id int, desde, hacia string) (int64, error)
	UpdateNumeroTicketTx(tx *gorm.DB, id int, numero string) error
	TopProductos(ctx context.Context, desde, hasta time.Time, limite int) ([]ProductoVendido, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id int) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Cliente").
		Preload("Empleado").
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByDateRange(ctx context.Context, desde, hasta time.Time, estado string) ([]model.Venta, error) {
	q := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", desde, hasta)
	if estado != "" {
		q = q.Where("estado = ?", strings.ToUpper(estado))
	}
	var ventas []model.Venta
	err := q.Preload("Items.Producto").
		Preload("Cliente").
		Preload("Empleado").
		Order("fecha ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id int, desde, hacia string) (int64, error) {
	res := tx.Model(&model.Venta{}).
		Where("id = ? AND estado = ?", id, desde).
		Update("estado", hacia)
	return res.RowsAffected, res.Error
}

func (r *ventaRepo) UpdateNumeroTicketTx(tx *gorm.DB, id int, numero string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).
		Update("numero_ticket", numero).Error
}

func (r *ventaRepo) TopProductos(ctx context.Context, desde, hasta time.Time, limite int) ([]ProductoVendido, error) {
	var rows []ProductoVendido
	err := r.db.WithContext(ctx).
		Table("detalle_venta").
		Select("detalle_venta.producto_id AS producto_id, productos.nombre AS nombre, SUM(detalle_venta.cantidad) AS cantidad_vendida, SUM(detalle_venta.subtotal) AS total_vendido").
		Joins("JOIN productos ON productos.id = detalle_venta.producto_id").
		Joins("JOIN ventas ON ventas.id = detalle_venta.venta_id").
		Where("ventas.fecha >= ? AND ventas.fecha < ? AND ventas.estado <> ?", desde, hasta, model.EstadoAnulada).
		Group("detalle_venta.producto_id, productos.nombre").
		Order("cantidad_vendida DESC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados of a Venta. Transitions are one-way: PENDIENTE/COMPLETADA → ANULADA.
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoCompletada = "COMPLETADA"
	EstadoAnulada    = "ANULADA"
)

// Venta is the header of one checkout transaction. Fecha is set once at
// creation. Totals are snapshots computed at sale time; they are never
// recomputed from the current catalog.
type Venta struct {
	ID         int  `gorm:"primaryKey;autoIncrement"`
	ClienteID  *int `gorm:"index"`
	EmpleadoID int  `gorm:"index;not null"`
	Fecha      time.Time       `gorm:"index;not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVA        decimal.Decimal `gorm:"type:decimal(12,2);not null;column:iva"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado     string          `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	// NumeroTicket is derived from the assigned id and the creation year,
	// so it is written in a second statement inside the same transaction.
	NumeroTicket *string `gorm:"type:varchar(50)"`
	// ConflictoStock marks sales that drove some product's stock negative.
	ConflictoStock bool `gorm:"not null;default:false"`

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Empleado *Empleado      `gorm:"foreignKey:EmpleadoID"`
	Items    []DetalleVenta `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one line item. PrecioUnitario, Subtotal and IVA are
// snapshots taken at sale time — immutable once written; anulación only
// touches the parent's estado and the compensating stock.
type DetalleVenta struct {
	ID             int             `gorm:"primaryKey;autoIncrement"`
	VentaID        int             `gorm:"index;not null"`
	ProductoID     int             `gorm:"index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IVA            decimal.Decimal `gorm:"type:decimal(10,2);not null;column:iva"`
	Descuento      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PromocionID    *int

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalle_venta" }

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. Stock is only ever mutated through the
// relative-adjustment repository primitives, never assigned from a sale.
type Producto struct {
	ID           int             `gorm:"primaryKey;autoIncrement"`
	Nombre       string          `gorm:"index;not null"`
	Precio       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock        int             `gorm:"not null;default:0"`
	CategoriaID  int             `gorm:"index;not null"`
	ProveedorID  int             `gorm:"index;not null"`
	CodigoBarras *string         `gorm:"type:varchar(50);uniqueIndex"`
	ImagenURL    *string         `gorm:"type:varchar(500)"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }

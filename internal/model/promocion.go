package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promocion is referenced from line items. There is no discount engine:
// the reference exists so tickets can attribute a line's descuento.
type Promocion struct {
	ID          int             `gorm:"primaryKey;autoIncrement"`
	Nombre      string          `gorm:"not null"`
	Tipo        string          `gorm:"type:varchar(20);not null"` // DESCUENTO | 2x1
	Valor       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaInicio time.Time
	FechaFin    time.Time
	Activa      bool `gorm:"not null;default:true"`
}

func (Promocion) TableName() string { return "promociones" }

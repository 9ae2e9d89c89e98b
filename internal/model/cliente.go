package model

import "time"

// Cliente is an optional buyer identity attached to a sale.
type Cliente struct {
	ID        int     `gorm:"primaryKey;autoIncrement"`
	Nombre    string  `gorm:"not null"`
	Telefono  *string `gorm:"type:varchar(20)"` // para notificaciones
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }

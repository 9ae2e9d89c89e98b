package model

import "time"

// Categoria classifies products.
type Categoria struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }

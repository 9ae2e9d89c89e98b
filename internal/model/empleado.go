package model

import "time"

// Empleado stores system users with role-based access.
// Rol: "cajero" | "supervisor" | "administrador"
type Empleado struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	Nombre       string `gorm:"not null"`
	Usuario      string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Empleado) TableName() string { return "empleados" }

package model

import "time"

// Proveedor represents a supplier with contact data.
type Proveedor struct {
	ID               int    `gorm:"primaryKey;autoIncrement"`
	Nombre           string `gorm:"not null"`
	ContactoNombre   string
	ContactoEmail    string
	ContactoTelefono string
	Direccion        string
	Activo           bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Productos []Producto `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

package dto

type CategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type CategoriaSimpleResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type ProveedorRequest struct {
	Nombre           string `json:"nombre" validate:"required"`
	ContactoNombre   string `json:"contacto_nombre"`
	ContactoEmail    string `json:"contacto_email" validate:"omitempty,email"`
	ContactoTelefono string `json:"contacto_telefono"`
	Direccion        string `json:"direccion"`
}

type ProveedorSimpleResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type ProveedorResponse struct {
	ID               int    `json:"id"`
	Nombre           string `json:"nombre"`
	ContactoNombre   string `json:"contacto_nombre"`
	ContactoEmail    string `json:"contacto_email"`
	ContactoTelefono string `json:"contacto_telefono"`
	Direccion        string `json:"direccion"`
	Activo           bool   `json:"activo"`
}

type ClienteRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Telefono *string `json:"telefono"`
}

type ClienteResponse struct {
	ID       int     `json:"id"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono"`
}

package dto

type LoginRequest struct {
	Usuario    string `json:"usuario"    validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

type EmpleadoRequest struct {
	Nombre     string `json:"nombre"     validate:"required"`
	Usuario    string `json:"usuario"    validate:"required"`
	Contrasena string `json:"contrasena" validate:"required,min=4"`
	Rol        string `json:"rol"        validate:"required,oneof=cajero supervisor administrador"`
}

type EmpleadoResponse struct {
	ID      int    `json:"id"`
	Nombre  string `json:"nombre"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}

type TokenResponse struct {
	Token      string           `json:"token"`
	Expiracion string           `json:"expiracion"`
	Empleado   EmpleadoResponse `json:"empleado"`
}

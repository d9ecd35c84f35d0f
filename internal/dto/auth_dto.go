package dto

type LoginRequest struct {
	EmpleadoID string `json:"empleado_id" validate:"required,uuid"`
	Pin        string `json:"pin"         validate:"required,numeric"`
}

type EmpleadoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int              `json:"expires_in"`
	Empleado    EmpleadoResponse `json:"empleado"`
}

type CrearEmpleadoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
	Email  string `json:"email"  validate:"required,email"`
	Rol    string `json:"rol"    validate:"required,oneof=admin supervisor vendedor"`
	Pin    string `json:"pin"    validate:"required,numeric"`
}

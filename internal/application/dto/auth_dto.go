package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest entrada para renovar la sesión.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AddAdminRequest entrada para que el owner registre un admin.
type AddAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthUserResponse usuario autenticado con datos de su perfil.
type AuthUserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// AuthResponse salida de login/refresh.
type AuthResponse struct {
	User         AuthUserResponse `json:"user"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

// AddAdminResponse salida de add-admin.
type AddAdminResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// ProfileResponse perfil del usuario autenticado.
type ProfileResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

package dto

import "time"

// RegisterRequest entrada para crear una cuenta de dueño.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	BusinessKind string `json:"business_kind"` // gym|barbershop
	Timezone     string `json:"timezone"`
}

// OwnerResponse salida de una cuenta (sin password).
type OwnerResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	BusinessName string    `json:"business_name"`
	BusinessKind string    `json:"business_kind"`
	Timezone     string    `json:"timezone"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string        `json:"token"`
	Owner OwnerResponse `json:"owner"`
}

// VerifyRequest reconfirmación de la contraseña antes de entrar a una vista sensible.
type VerifyRequest struct {
	Password string `json:"password"`
}

// VerifyResponse resultado de la reconfirmación.
type VerifyResponse struct {
	Verified bool `json:"verified"`
}

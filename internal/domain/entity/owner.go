package entity

import "time"

// Tipos de negocio soportados.
const (
	BusinessGym        = "gym"
	BusinessBarbershop = "barbershop"
)

// Estados de cuenta.
const (
	OwnerStatusActive    = "active"
	OwnerStatusSuspended = "suspended"
)

// Owner es la cuenta del operador. Todas las colecciones (clientes, ventas, turnos) cuelgan de ella.
type Owner struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	BusinessName string
	BusinessKind string
	Timezone     string // zona IANA; vacío = la de la aplicación
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

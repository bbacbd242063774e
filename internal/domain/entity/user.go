package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User es un operador del sistema (cajero, encargado, administrador).
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Name         string
	Email        string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

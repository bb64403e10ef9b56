package domain

import "time"

// Property states.
const (
	PropertyAvailable   = "DISPONIBLE"
	PropertyOccupied    = "OCUPADA"
	PropertyMaintenance = "MANTENIMIENTO"
)

// Property represents a rental unit owned by a user.
type Property struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"nombre"`
	Address   string    `json:"direccion"`
	City      string    `json:"ciudad"`
	Type      string    `json:"tipo,omitempty"`
	Status    string    `json:"estado"`
	Notes     string    `json:"notas,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PropertyStats summarizes occupancy for a single owner.
type PropertyStats struct {
	Total     int `json:"total"`
	Occupied  int `json:"ocupadas"`
	Available int `json:"disponibles"`
}

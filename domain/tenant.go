package domain

import "time"

// Tenant states.
const (
	TenantActive   = "ACTIVO"
	TenantInactive = "INACTIVO"
	TenantPending  = "PENDIENTE"
)

// Tenant represents a person renting one of the owner's properties.
type Tenant struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FirstName   string    `json:"nombre"`
	LastName    string    `json:"apellido"`
	Email       string    `json:"email"`
	Phone       string    `json:"telefono"`
	DocumentID  string    `json:"dni"`
	Nationality string    `json:"nacionalidad"`
	Occupation  string    `json:"ocupacion,omitempty"`
	Status      string    `json:"estado"`
	PropertyID  string    `json:"propiedad,omitempty"`
	LeaseID     string    `json:"contrato,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

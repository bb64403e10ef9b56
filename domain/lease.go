package domain

import "time"

// Lease states.
const (
	LeaseActive     = "ACTIVO"
	LeaseFinished   = "FINALIZADO"
	LeaseTerminated = "RESCINDIDO"
)

// Lease represents a rental agreement between an owner's property and a tenant.
type Lease struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	PropertyID  string     `json:"propiedad"`
	TenantID    string     `json:"inquilino"`
	StartDate   time.Time  `json:"fechaInicio"`
	EndDate     *time.Time `json:"fechaFin,omitempty"`
	MonthlyRent float64    `json:"montoMensual"`
	Currency    string     `json:"moneda"`
	Deposit     float64    `json:"deposito,omitempty"`
	Status      string     `json:"estado"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

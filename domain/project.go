package domain

import "time"

// Project and task states.
const (
	StatusPending    = "PENDIENTE"
	StatusInProgress = "EN_PROGRESO"
	StatusCompleted  = "COMPLETADO"
	StatusCancelled  = "CANCELADO"
)

// Priorities shared by projects and tasks.
const (
	PriorityLow    = "BAJA"
	PriorityMedium = "MEDIA"
	PriorityHigh   = "ALTA"
)

// Project groups tasks under a user, optionally linked to a property.
type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"nombre"`
	Description string     `json:"descripcion,omitempty"`
	Status      string     `json:"estado"`
	Priority    string     `json:"prioridad"`
	StartDate   time.Time  `json:"fechaInicio"`
	EndDate     *time.Time `json:"fechaFin,omitempty"`
	Budget      float64    `json:"presupuesto,omitempty"`
	Tags        []string   `json:"etiquetas,omitempty"`
	PropertyID  string     `json:"propiedad,omitempty"`
	Tasks       []Task     `json:"tareas,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ValidateDates rejects projects whose end precedes their start.
func (p *Project) ValidateDates() error {
	if p != nil && p.EndDate != nil && !p.StartDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return Validation("La fecha de fin debe ser posterior a la fecha de inicio")
	}
	return nil
}

package domain

import "time"

// Task states use the feminine forms from the original data model.
const (
	TaskPending    = "PENDIENTE"
	TaskInProgress = "EN_PROGRESO"
	TaskCompleted  = "COMPLETADA"
	TaskCancelled  = "CANCELADA"
)

// Task represents a project-scoped activity item.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ProjectID   string     `json:"proyecto"`
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion,omitempty"`
	Status      string     `json:"estado"`
	Priority    string     `json:"prioridad"`
	DueDate     *time.Time `json:"fechaVencimiento,omitempty"`
	Completed   bool       `json:"completada"`
	Tags        []string   `json:"etiquetas,omitempty"`
	Order       int        `json:"orden"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && (t.Completed || t.Status == TaskCompleted)
}

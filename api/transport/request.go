package transport

import "github.com/presenta/backend/domain"

// Auth payloads.

type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"telefono"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Profile payloads. Pointer fields distinguish "absent" from "set to zero".

type UpdateProfileRequest struct {
	Name  *string `json:"nombre"`
	Phone *string `json:"telefono"`
}

type UpdatePreferencesRequest struct {
	Theme         *string                         `json:"theme"`
	Language      *string                         `json:"language"`
	Notifications *domain.NotificationPreferences `json:"notifications"`
}

// Record payloads.

type PropertyRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	City    string `json:"ciudad"`
	Type    string `json:"tipo"`
	Status  string `json:"estado"`
	Notes   string `json:"notas"`
}

type TenantRequest struct {
	FirstName   string `json:"nombre"`
	LastName    string `json:"apellido"`
	Email       string `json:"email"`
	Phone       string `json:"telefono"`
	DocumentID  string `json:"dni"`
	Nationality string `json:"nacionalidad"`
	Occupation  string `json:"ocupacion"`
	Status      string `json:"estado"`
	PropertyID  string `json:"propiedad"`
	LeaseID     string `json:"contrato"`
}

type LeaseRequest struct {
	PropertyID  string  `json:"propiedad"`
	TenantID    string  `json:"inquilino"`
	StartDate   string  `json:"fechaInicio"`
	EndDate     string  `json:"fechaFin"`
	MonthlyRent float64 `json:"montoMensual"`
	Currency    string  `json:"moneda"`
	Deposit     float64 `json:"deposito"`
	Status      string  `json:"estado"`
}

type TransactionRequest struct {
	Description string  `json:"descripcion"`
	Amount      float64 `json:"monto"`
	Date        string  `json:"fecha"`
	Category    string  `json:"categoria"`
	Status      string  `json:"estado"`
	Type        string  `json:"tipo"`
	Currency    string  `json:"moneda"`
	LeaseID     string  `json:"contrato"`
}

type RoutineRequest struct {
	Date      string                  `json:"fecha"`
	BodyCare  domain.BodyCareSection  `json:"bodyCare"`
	Nutrition domain.NutritionSection `json:"nutricion"`
	Exercise  domain.ExerciseSection  `json:"ejercicio"`
	Cleaning  domain.CleaningSection  `json:"cleaning"`
}

type ProjectRequest struct {
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Status      string   `json:"estado"`
	Priority    string   `json:"prioridad"`
	StartDate   string   `json:"fechaInicio"`
	EndDate     string   `json:"fechaFin"`
	Budget      float64  `json:"presupuesto"`
	Tags        []string `json:"etiquetas"`
	PropertyID  string   `json:"propiedad"`
}

type TaskRequest struct {
	ProjectID   string   `json:"proyecto"`
	Title       string   `json:"titulo"`
	Description string   `json:"descripcion"`
	Status      string   `json:"estado"`
	Priority    string   `json:"prioridad"`
	DueDate     string   `json:"fechaVencimiento"`
	Completed   bool     `json:"completada"`
	Tags        []string `json:"etiquetas"`
	Order       int      `json:"orden"`
}

package domain

import "time"

// Transaction states and kinds.
const (
	TransactionPending = "PENDIENTE"
	TransactionPaid    = "PAGADO"

	TransactionIncome  = "INGRESO"
	TransactionExpense = "EGRESO"
)

// TransactionCategories is the closed list of accepted categories.
var TransactionCategories = []string{
	"Salud y Belleza",
	"Contabilidad y Facturas",
	"Transporte",
	"Comida y Mercado",
	"Fiesta",
	"Ropa",
	"Tecnología",
	"Otro",
}

// Transaction represents a financial movement recorded by a user.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"descripcion"`
	Amount      float64   `json:"monto"`
	Date        time.Time `json:"fecha"`
	Category    string    `json:"categoria"`
	Status      string    `json:"estado"`
	Type        string    `json:"tipo"`
	Currency    string    `json:"moneda"`
	LeaseID     string    `json:"contrato,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidCategory reports whether a category belongs to the accepted list.
func ValidCategory(category string) bool {
	for _, c := range TransactionCategories {
		if c == category {
			return true
		}
	}
	return false
}

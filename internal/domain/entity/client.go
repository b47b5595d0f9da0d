package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente del cadastro.
// BirthDate y RegistrationDate son fechas civiles (00:00 UTC).
type Client struct {
	ID               int64
	Name             string
	IDNumber         string // CPF, 10 dígitos
	BirthDate        time.Time
	RegistrationDate time.Time        // se fija al crear y nunca se actualiza
	HouseholdIncome  *decimal.Decimal // nil = renda desconocida (no es cero)
}

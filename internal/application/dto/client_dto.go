package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
	"github.com/jhoicas/cadastro-clientes/internal/domain/validation"
)

// CreateClientRequest formulario de POST /clients.
// DataCadastro vacío o ausente significa hoy.
type CreateClientRequest struct {
	Name             string `form:"nome"`
	IDNumber         string `form:"cpf"`
	BirthDate        string `form:"data_nascimento"`
	RegistrationDate string `form:"data_cadastro"`
	Income           string `form:"renda_familiar"`
}

// UpdateClientRequest formulario de POST /clients/:id/update.
// No lleva fecha de cadastro: la guardada nunca cambia.
type UpdateClientRequest struct {
	Name      string `form:"nome"`
	IDNumber  string `form:"cpf"`
	BirthDate string `form:"data_nascimento"`
	Income    string `form:"renda_familiar"`
}

// ClientResponse cliente listo para mostrar.
type ClientResponse struct {
	ID               int64
	Name             string
	IDNumber         string
	BirthDate        string // YYYY-MM-DD
	RegistrationDate string // YYYY-MM-DD
	Income           *decimal.Decimal
	Band             income.Band
}

// ClientFormView datos del formulario de alta o edición (valores tal como se muestran).
type ClientFormView struct {
	ID               int64 // 0 en alta
	Name             string
	IDNumber         string
	BirthDate        string
	RegistrationDate string
	Income           string
	MaxBirthDate     string // hoy, límite superior del input de fecha
	Errors           []validation.FieldError
}

// IsEdit indica si el formulario edita un cliente existente.
func (v ClientFormView) IsEdit() bool { return v.ID != 0 }

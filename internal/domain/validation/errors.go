// Package validation valida los campos del formulario de cliente y devuelve
// mensajes por campo en pt-BR.
package validation

import (
	"sort"
	"strings"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
)

// Field identifica un campo del formulario de cliente.
type Field int

const (
	FieldName Field = iota + 1
	FieldIDNumber
	FieldBirthDate
	FieldRegistrationDate
	FieldIncome
)

// Label etiqueta del campo mostrada junto al mensaje de error.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Nome"
	case FieldIDNumber:
		return "CPF"
	case FieldBirthDate:
		return "Data de nascimento"
	case FieldRegistrationDate:
		return "Data de cadastro"
	case FieldIncome:
		return "Renda familiar"
	default:
		return "Campo"
	}
}

// Key nombre del input del formulario HTML.
func (f Field) Key() string {
	switch f {
	case FieldName:
		return "nome"
	case FieldIDNumber:
		return "cpf"
	case FieldBirthDate:
		return "data_nascimento"
	case FieldRegistrationDate:
		return "data_cadastro"
	case FieldIncome:
		return "renda_familiar"
	default:
		return "unknown"
	}
}

// String devuelve la etiqueta del campo.
func (f Field) String() string { return f.Label() }

// Errors mensajes de validación por campo. Un Errors vacío significa entrada válida.
type Errors map[Field]string

// FieldError par campo/mensaje para presentación ordenada.
type FieldError struct {
	Field   Field
	Label   string
	Message string
}

// Set registra el mensaje de un campo, reemplazando uno previo.
func (e Errors) Set(f Field, msg string) {
	e[f] = msg
}

// Has indica si el campo tiene error.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Empty indica que no hay errores.
func (e Errors) Empty() bool { return len(e) == 0 }

// Ordered devuelve los errores en el orden de los campos del formulario.
func (e Errors) Ordered() []FieldError {
	out := make([]FieldError, 0, len(e))
	for f, msg := range e {
		out = append(out, FieldError{Field: f, Label: f.Label(), Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Error implementa error: "Campo: mensaje; Campo: mensaje".
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e.Ordered() {
		parts = append(parts, fe.Label+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e Errors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

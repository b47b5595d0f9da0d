package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/cadastro-clientes/internal/domain/period"
)

// NameMaxLength largo máximo del nombre, en caracteres.
const NameMaxLength = 150

// Mensajes mostrados al usuario (pt-BR).
const (
	MsgRequired          = "Campo obrigatório."
	MsgNameTooLong       = "Máximo 150 caracteres."
	MsgNamePattern       = "Use apenas letras, espaços, apóstrofo, hífen e ponto."
	MsgIDNumberShape     = "Informe 10 dígitos numéricos."
	MsgIDNumberInvalid   = "CPF inválido."
	MsgIDNumberDuplicate = "CPF já cadastrado."
	MsgBirthDateInvalid  = "Data inválida ou vazia."
	MsgBirthDateFuture   = "Não pode ser futura."
	MsgRegistrationDate  = "Data inválida."
	MsgIncomeInvalid     = "Valor inválido."
	MsgIncomeNegative    = "Deve ser maior ou igual a 0."
	MsgIncomeOutOfRange  = "Valor muito alto."
)

var (
	// letras (incluye acentuadas Latin-1), espacio, apóstrofo ' o ’, punto y guion.
	namePattern     = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ'’. -]+$`)
	idNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

	// NUMERIC(14,2) admite hasta 12 dígitos enteros.
	maxIncome = decimal.New(1, 12)
)

const (
	incomeMaxIntDigits   = 12
	incomeMaxInputLength = 32
	incomeMaxScale       = 16
)

// Input campos crudos del formulario de cliente (sin la fecha de cadastro).
type Input struct {
	Name      string
	IDNumber  string
	BirthDate string
	Income    string
}

// Result campos normalizados de una entrada válida.
type Result struct {
	Name      string
	IDNumber  string
	BirthDate time.Time
	Income    *decimal.Decimal
}

// Validate valida todos los campos y acumula los errores. today es la fecha civil actual.
// Los campos de Result sólo son confiables cuando Errors está vacío.
func Validate(in Input, today time.Time) (Result, Errors) {
	errs := Errors{}
	var res Result

	res.Name = NormalizeName(in.Name)
	if msg := CheckName(res.Name); msg != "" {
		errs.Set(FieldName, msg)
	}

	res.IDNumber = strings.TrimSpace(in.IDNumber)
	if msg := CheckIDNumber(res.IDNumber); msg != "" {
		errs.Set(FieldIDNumber, msg)
	}

	birth, msg := ParseBirthDate(in.BirthDate, today)
	if msg != "" {
		errs.Set(FieldBirthDate, msg)
	}
	res.BirthDate = birth

	inc, msg := ParseIncome(in.Income)
	if msg != "" {
		errs.Set(FieldIncome, msg)
	}
	res.Income = inc

	return res, errs
}

// NormalizeName aplica NFC, recorta y colapsa los espacios internos.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}

// CheckName valida un nombre ya normalizado. El largo se evalúa primero y el
// patrón sólo cuando el largo es válido.
func CheckName(name string) string {
	if name == "" {
		return MsgRequired
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return MsgNameTooLong
	}
	if !namePattern.MatchString(name) {
		return MsgNamePattern
	}
	return ""
}

// CheckIDNumber valida el formato (10 dígitos) y luego la validez del CPF.
func CheckIDNumber(id string) string {
	if !idNumberPattern.MatchString(id) {
		return MsgIDNumberShape
	}
	if !IDNumberIsValid(id) {
		return MsgIDNumberInvalid
	}
	return ""
}

// IDNumberIsValid regla de validez del CPF: 10 dígitos numéricos, sin dígito verificador.
func IDNumberIsValid(id string) bool {
	return idNumberPattern.MatchString(id)
}

// ParseBirthDate interpreta la fecha de nacimiento; no puede ser posterior a today.
func ParseBirthDate(raw string, today time.Time) (time.Time, string) {
	d, err := period.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, MsgBirthDateInvalid
	}
	if d.After(period.Date(today)) {
		return d, MsgBirthDateFuture
	}
	return d, ""
}

// ParseRegistrationDate fecha de cadastro al crear: vacía usa today.
func ParseRegistrationDate(raw string, today time.Time) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return period.Date(today), ""
	}
	d, err := period.ParseDate(raw)
	if err != nil {
		return time.Time{}, MsgRegistrationDate
	}
	return d, ""
}

// ParseIncome interpreta la renda familiar. Vacía devuelve nil (desconocida).
// El valor aceptado se redondea a 2 decimales.
func ParseIncome(raw string) (*decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	if len(raw) > incomeMaxInputLength {
		return nil, MsgIncomeInvalid
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, MsgIncomeInvalid
	}
	if v.IsNegative() {
		return nil, MsgIncomeNegative
	}
	if v.IsZero() {
		zero := decimal.Zero
		return &zero, ""
	}
	// Round y Cmp reescalan a 10^|exponente|; se acota antes de operar.
	exp := v.Exponent()
	if exp < -incomeMaxScale {
		return nil, MsgIncomeInvalid
	}
	if exp > 0 && v.NumDigits()+int(exp) > incomeMaxIntDigits {
		return nil, MsgIncomeOutOfRange
	}
	v = v.Round(2)
	if v.GreaterThanOrEqual(maxIncome) {
		return nil, MsgIncomeOutOfRange
	}
	return &v, ""
}

// Package income clasifica la renda familiar de un cliente en clases A/B/C.
package income

import "github.com/shopspring/decimal"

// Band clase de renda. BandNone indica renda desconocida.
type Band string

const (
	BandNone Band = ""
	BandA    Band = "A"
	BandB    Band = "B"
	BandC    Band = "C"
)

// Umbrales de clasificación; el límite es inclusivo en la clase inferior.
// Las consultas agregadas del repositorio usan los mismos valores.
var (
	UpperBoundA = decimal.RequireFromString("980.00")
	UpperBoundB = decimal.RequireFromString("2500.00")
)

// Classify devuelve la clase de la renda: A si v <= 980, B si 980 < v <= 2500, C si v > 2500.
func Classify(v *decimal.Decimal) Band {
	if v == nil {
		return BandNone
	}
	switch {
	case v.LessThanOrEqual(UpperBoundA):
		return BandA
	case v.LessThanOrEqual(UpperBoundB):
		return BandB
	default:
		return BandC
	}
}

// CSSClass sufijo de la clase CSS del badge de renda.
func (b Band) CSSClass() string {
	switch b {
	case BandA:
		return "a"
	case BandB:
		return "b"
	case BandC:
		return "c"
	default:
		return "neutral"
	}
}

// Counts cantidad de clientes por clase.
type Counts struct {
	A int
	B int
	C int
}

// Add suma un cliente a la clase correspondiente; BandNone se ignora.
func (c *Counts) Add(b Band) {
	switch b {
	case BandA:
		c.A++
	case BandB:
		c.B++
	case BandC:
		c.C++
	}
}

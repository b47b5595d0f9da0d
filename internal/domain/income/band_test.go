package income_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   *decimal.Decimal
		want income.Band
	}{
		{"desconocida", nil, income.BandNone},
		{"cero", dec("0"), income.BandA},
		{"limite A inclusivo", dec("980.00"), income.BandA},
		{"apenas sobre A", dec("980.01"), income.BandB},
		{"mil", dec("1000.00"), income.BandB},
		{"limite B inclusivo", dec("2500.00"), income.BandB},
		{"apenas sobre B", dec("2500.01"), income.BandC},
		{"alta", dec("100000"), income.BandC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, income.Classify(tc.in))
		})
	}
}

func TestBand_CSSClass(t *testing.T) {
	assert.Equal(t, "a", income.BandA.CSSClass())
	assert.Equal(t, "b", income.BandB.CSSClass())
	assert.Equal(t, "c", income.BandC.CSSClass())
	assert.Equal(t, "neutral", income.BandNone.CSSClass())
}

func TestCounts_Add(t *testing.T) {
	var c income.Counts
	for _, b := range []income.Band{income.BandA, income.BandB, income.BandB, income.BandNone, income.BandC} {
		c.Add(b)
	}
	assert.Equal(t, income.Counts{A: 1, B: 2, C: 1}, c)
}

package http_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/cadastro-clientes/internal/interfaces/http"
)

func TestFormatCurrency(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	p := func(s string) *decimal.Decimal { v := d(s); return &v }

	assert.Equal(t, "R$ 1.000", apphttp.FormatCurrency(d("1000.00")))
	assert.Equal(t, "R$ 1.234.568", apphttp.FormatCurrency(d("1234567.89")))
	assert.Equal(t, "R$ 980", apphttp.FormatCurrency(p("980.00")))
	assert.Equal(t, "R$ 2", apphttp.FormatCurrency(d("2.5")))
	assert.Equal(t, "R$ 0", apphttp.FormatCurrency(decimal.Zero))
	assert.Equal(t, "—", apphttp.FormatCurrency((*decimal.Decimal)(nil)))
	assert.Equal(t, "—", apphttp.FormatCurrency(nil))
}

func TestViews_RenderWithLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/base.html": {Data: []byte(`{{define "base"}}<title>{{.Title}}</title>{{template "content" .}}{{end}}`)},
		"tpl/page.html": {Data: []byte(`{{define "content"}}<p>{{currency .Value}}</p>{{end}}`)},
	}
	views, err := apphttp.NewViews(fsys, "tpl")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, views.Render(&buf, "page", map[string]any{"Title": "X", "Value": decimal.NewFromInt(1500)}))
	assert.Equal(t, "<title>X</title><p>R$ 1.500</p>", buf.String())

	assert.Error(t, views.Render(&buf, "missing", nil))
}

// Package period resuelve los períodos de los relatórios (hoy, semana, mes, todos)
// a una fecha de inicio inclusiva, y concentra el manejo de fechas civiles.
package period

import "time"

// DateLayout formato de fecha de los formularios (input type="date").
const DateLayout = "2006-01-02"

// dateParseLayout acepta también mes y día sin cero a la izquierda.
const dateParseLayout = "2006-1-2"

// Period ventana de tiempo de un relatório.
type Period string

const (
	Today Period = "today"
	Week  Period = "week"
	Month Period = "month"
	All   Period = "all"
)

// Default período usado cuando el selector es vacío o desconocido.
const Default = Month

// Epoch inicio del período "all"; anterior a cualquier registro.
var Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Parse interpreta el selector recibido en la query string.
func Parse(s string) Period {
	switch p := Period(s); p {
	case Today, Week, Month, All:
		return p
	default:
		return Default
	}
}

// Start devuelve la fecha de inicio (inclusiva) del período para el día today.
// La semana empieza el lunes.
func (p Period) Start(today time.Time) time.Time {
	today = Date(today)
	switch p {
	case Today:
		return today
	case Week:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset)
	case All:
		return Epoch
	default:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// Label etiqueta pt-BR del período.
func (p Period) Label() string {
	switch p {
	case Today:
		return "Hoje"
	case Week:
		return "Esta semana"
	case All:
		return "Todos"
	default:
		return "Este mês"
	}
}

// Option opción del selector de período.
type Option struct {
	Value    Period
	Label    string
	Selected bool
}

// Options lista los períodos en el orden del selector, marcando el actual.
func Options(current Period) []Option {
	all := []Period{Today, Week, Month, All}
	out := make([]Option, 0, len(all))
	for _, p := range all {
		out = append(out, Option{Value: p, Label: p.Label(), Selected: p == current})
	}
	return out
}

// Date normaliza t a su fecha civil (00:00 UTC) conservando año, mes y día.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayIn devuelve la fecha civil de now en la zona loc.
func TodayIn(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return Date(now)
}

// ParseDate interpreta una fecha YYYY-MM-DD; mes y día pueden venir sin relleno.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateParseLayout, s)
}

// AgeOn edad en años completos de alguien nacido en birth, a la fecha today.
func AgeOn(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

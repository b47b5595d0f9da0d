package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadastro-clientes/internal/domain/period"
)

// ReportRequest parámetros de GET /reports.
type ReportRequest struct {
	Period string `query:"period"` // today|week|month|all; por defecto month
}

// IncomeReport estadísticas de renda de un período.
// AverageIncome es el promedio de todos los clientes, sin filtro de período;
// los contadores sólo consideran los cadastrados desde Since.
type IncomeReport struct {
	Period             period.Period
	Since              string // YYYY-MM-DD
	AverageIncome      decimal.Decimal
	AdultsAboveAverage int
	ClassA             int
	ClassB             int
	ClassC             int
	PeriodOptions      []period.Option
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para los relatórios de renda.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de relatórios.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// AverageIncome promedio de renda sobre todos los clientes con renda conocida.
// COALESCE devuelve cero cuando ningún cliente tiene renda.
func (r *ReportRepo) AverageIncome(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(AVG(household_income), 0)
	  FROM clients
	 WHERE household_income IS NOT NULL`

	var avg decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("reports.AverageIncome: %w", err)
	}
	return avg, nil
}

// CountAdultsAboveAverage cuenta mayores de 18 con renda > average cadastrados desde since.
// La edad se calcula en años completos con AGE(today, birth_date).
func (r *ReportRepo) CountAdultsAboveAverage(
	ctx context.Context,
	since time.Time,
	average decimal.Decimal,
	today time.Time,
) (int, error) {
	const query = `
	SELECT COUNT(*)
	  FROM clients
	 WHERE registration_date >= $1
	   AND household_income IS NOT NULL
	   AND household_income > $2
	   AND EXTRACT(YEAR FROM AGE($3::date, birth_date)) >= 18`

	var n int
	if err := r.q.QueryRow(ctx, query, since, average, today).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountAdultsAboveAverage: %w", err)
	}
	return n, nil
}

// CountByBand cuenta por clase de renda los clientes cadastrados desde since.
// Los umbrales vienen del paquete income para no duplicarlos en SQL.
func (r *ReportRepo) CountByBand(ctx context.Context, since time.Time) (income.Counts, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE household_income <= $2)                            AS class_a,
	    COUNT(*) FILTER (WHERE household_income > $2 AND household_income <= $3) AS class_b,
	    COUNT(*) FILTER (WHERE household_income > $3)                             AS class_c
	  FROM clients
	 WHERE registration_date >= $1
	   AND household_income IS NOT NULL`

	var c income.Counts
	err := r.q.QueryRow(ctx, query, since, income.UpperBoundA, income.UpperBoundB).Scan(&c.A, &c.B, &c.C)
	if err != nil {
		return income.Counts{}, fmt.Errorf("reports.CountByBand: %w", err)
	}
	return c, nil
}

package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
	"github.com/jhoicas/cadastro-clientes/internal/domain/period"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

// ReportUseCase relatórios de renda por período.
type ReportUseCase struct {
	repo  repository.ReportRepository
	today Clock
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, today Clock) *ReportUseCase {
	return &ReportUseCase{repo: repo, today: today}
}

// IncomeReport calcula el promedio general y los contadores del período pedido.
// Un período desconocido se trata como el mes actual.
func (uc *ReportUseCase) IncomeReport(ctx context.Context, req dto.ReportRequest) (*dto.IncomeReport, error) {
	p := period.Parse(req.Period)
	today := uc.today()
	since := p.Start(today)

	avg, err := uc.repo.AverageIncome(ctx)
	if err != nil {
		return nil, fmt.Errorf("average income: %w", err)
	}

	var (
		adults int
		counts income.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.repo.CountAdultsAboveAverage(gctx, since, avg, today)
		if err != nil {
			return fmt.Errorf("count adults above average: %w", err)
		}
		adults = n
		return nil
	})
	g.Go(func() error {
		c, err := uc.repo.CountByBand(gctx, since)
		if err != nil {
			return fmt.Errorf("count by band: %w", err)
		}
		counts = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.IncomeReport{
		Period:             p,
		Since:              since.Format(period.DateLayout),
		AverageIncome:      avg,
		AdultsAboveAverage: adults,
		ClassA:             counts.A,
		ClassB:             counts.B,
		ClassC:             counts.C,
		PeriodOptions:      period.Options(p),
	}, nil
}

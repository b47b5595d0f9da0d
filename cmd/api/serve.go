package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/memory"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cadastro-clientes/internal/interfaces/http"
	"github.com/jhoicas/cadastro-clientes/pkg/config"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
	"github.com/jhoicas/cadastro-clientes/pkg/metrics"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// stores repositorios seleccionados según STORE_DRIVER.
type stores struct {
	clients repository.ClientRepository
	reports repository.ReportRepository
	ping    func(context.Context) error
	close   func()
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	today := usecase.SystemClock(loc)
	app, err := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		ClientUC: usecase.NewClientUseCase(st.clients, today, m),
		ReportUC: usecase.NewReportUseCase(st.reports, today),
		Log:      log.Component("http"),
		Metrics:  m,
		Gatherer: reg,
		Ping:     st.ping,
	})
	if err != nil {
		return fmt.Errorf("crear app HTTP: %w", err)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{clients: s, reports: s, close: func() {}}, nil
	}

	if cfg.Store.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), postgres.Up); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &stores{
		clients: postgres.NewClientRepository(pool),
		reports: postgres.NewReportRepository(pool),
		ping:    pool.Ping,
		close:   pool.Close,
	}, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/postgres"
	"github.com/jhoicas/cadastro-clientes/pkg/config"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Aplica o revierte las migraciones de PostgreSQL",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			dir := postgres.Direction(args[0])
			if err := postgres.RunMigrations(cfg.DB.ConnectionString(), dir); err != nil {
				return err
			}
			log.Info().Str("direction", string(dir)).Msg("migraciones aplicadas")
			return nil
		},
	}
}

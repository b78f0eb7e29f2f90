package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/stockflow-api/internal/bootstrap"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// app estado compartido por los subcomandos, creado en PersistentPreRunE.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store *bootstrap.Store
	svc   *bootstrap.Services
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stockctl",
		Short: "Herramientas de operación del ledger de stock",
		Long: `stockctl inspecciona y repara el inventario directamente sobre la base de datos.

Usa la misma configuración que la API (DATABASE_URL, DB_*, LOG_LEVEL...).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.store != nil {
				a.store.Close()
			}
		},
	}
	root.AddCommand(newReconcileCmd(a), newMovementsCmd(a))
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.App.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("stockctl requiere STORE_DRIVER=postgres (actual: %s)", cfg.App.StoreDriver)
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "stockctl", Output: os.Stderr})

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	a.store = store
	a.svc = bootstrap.NewServices(store, nil, cfg.Ingest, a.log.Zerolog())
	return nil
}

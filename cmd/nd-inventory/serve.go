package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/config"
	"github.com/ndinv/sql-inventory/internal/handlers"
	"github.com/ndinv/sql-inventory/internal/metrics"
	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/server"
	"github.com/ndinv/sql-inventory/internal/services"
	"github.com/ndinv/sql-inventory/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP",
		Long: `serve exposes the inventory on /api/v1/inventory and /api/v1/hosts/<name>.
Every request triggers a fresh build; builds never run concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("server-mode", cfg.Server.ServerMode, "Server mode: prod or dev")
	cmd.Flags().Int("http-port", cfg.Server.HTTPPort, "HTTP listen port")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("serve")

	inputs, err := config.LoadInputs(cfg.Inventory.InputsFile)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	srv := services.NewInventoryService(st, inputs).WithRecorder(m)

	sched := scheduler.NewScheduler[*models.Inventory](1)
	defer sched.Close()

	h := handlers.New(srv, sched)
	s, err := server.NewServer(cfg, st, m.Handler(), func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}

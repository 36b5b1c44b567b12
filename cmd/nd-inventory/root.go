package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/config"
	"github.com/ndinv/sql-inventory/internal/emitter"
	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/services"
	"github.com/ndinv/sql-inventory/internal/store"
)

func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithDefaults()
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "nd-inventory",
		Short: "Ansible dynamic inventory built from SQL queries",
		Long: `nd-inventory runs the queries of an inputs document against a SQL database
and prints an Ansible dynamic inventory.

  nd-inventory --list
  nd-inventory --host <name>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			syncEnvExcept(cobrautil.SyncViperPreRunE(envPrefix), "list", "host"),
			loadSettings(v, cfg),
			setupLogging(cfg),
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetBool("list")
			hostSet := cmd.Flags().Changed("host")
			if list == hostSet {
				return errors.New("exactly one of --list or --host must be given")
			}

			mode := emitter.ModeList
			host := ""
			if hostSet {
				mode = emitter.ModeHost
				host, _ = cmd.Flags().GetString("host")
			}

			return runInventory(cmd, cfg, mode, host)
		},
	}

	registerPersistentFlags(cmd.PersistentFlags(), cfg)
	cmd.Flags().Bool("list", false, "Print the full inventory")
	cmd.Flags().String("host", "", "Print the variables of a single host")
	cmd.Flags().String("format", cfg.Inventory.Format, "Output format: json or yaml")
	cmd.Flags().Bool("pretty", cfg.Inventory.Pretty, "Indent JSON output")

	cmd.AddCommand(
		newServeCommand(cfg),
		newValidateCommand(cfg),
		newExportCommand(cfg),
	)

	return cmd
}

func runInventory(cmd *cobra.Command, cfg *config.Configuration, mode emitter.Mode, host string) error {
	format, err := emitter.ParseFormat(cfg.Inventory.Format)
	if err != nil {
		return err
	}

	inv, err := buildInventory(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	doc, err := emitter.Render(inv, mode, host)
	if err != nil {
		return err
	}

	return emitter.Encode(cmd.OutOrStdout(), doc, format, cfg.Inventory.Pretty)
}

// buildInventory loads the inputs document, connects and runs one build.
// The inputs are validated before any connection is attempted.
func buildInventory(ctx context.Context, cfg *config.Configuration) (*models.Inventory, error) {
	inputs, err := config.LoadInputs(cfg.Inventory.InputsFile)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return services.NewInventoryService(st, inputs).Build(ctx)
}

func openStore(ctx context.Context, cfg *config.Configuration) (*store.Store, error) {
	driver, err := store.LookupDriver(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	db, err := store.NewDB(ctx, cfg.Database.Driver, cfg.Database.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	zap.S().Named("store").Debugw("connected", "driver", driver.Name)

	return store.NewStore(db, driver), nil
}

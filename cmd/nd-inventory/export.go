package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/config"
	"github.com/ndinv/sql-inventory/internal/emitter"
)

func newExportCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return errors.New("--output is required")
			}

			inv, err := buildInventory(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := emitter.WriteWorkbook(&buf, inv); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}

			zap.S().Named("export").Infow("workbook written", "path", output, "hosts", len(inv.Hosts), "groups", len(inv.Groups))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "inventory.xlsx", "Path of the workbook to write")

	return cmd
}

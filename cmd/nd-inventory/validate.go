package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ndinv/sql-inventory/internal/config"
	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/util"
)

func newValidateCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the inputs document without connecting to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := config.LoadInputs(cfg.Inventory.InputsFile)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("✗"), cfg.Inventory.InputsFile)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d input(s)\n", color.GreenString("✓"), cfg.Inventory.InputsFile, len(inputs))
			for _, in := range inputs {
				printInput(cmd.OutOrStdout(), in)
			}
			return nil
		},
	}
}

func printInput(w io.Writer, in models.Input) {
	kind := color.CyanString("required")
	if !in.IsRequired() {
		kind = color.YellowString("optional")
	}
	fmt.Fprintf(w, "  %s %s (%s)\n", color.GreenString("✓"), in.Name, kind)
	fmt.Fprintf(w, "      host_field: %s\n", in.HostField)

	if len(in.GroupFields) > 0 {
		fmt.Fprintf(w, "      group_fields: %s\n", strings.Join(in.GroupFields, ", "))
	}
	if len(in.GroupTemplates) > 0 {
		fmt.Fprintf(w, "      group_templates: %d\n", len(in.GroupTemplates))
	}
	if len(in.VarFields) > 0 {
		cols := make([]string, 0, len(in.VarFields))
		for _, col := range util.SortedKeys(in.VarFields) {
			cols = append(cols, col+"→"+in.VarFields[col])
		}
		fmt.Fprintf(w, "      var_fields: %s\n", strings.Join(cols, ", "))
	}
	for _, t := range in.Transforms {
		fmt.Fprintf(w, "      transform: %s =~ /%s/ → %s\n", t.Field, t.Regex, t.Out)
	}
}

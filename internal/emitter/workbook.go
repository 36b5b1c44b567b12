package emitter

import (
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/util"
)

const (
	hostsSheet  = "hosts"
	groupsSheet = "groups"
)

// WriteWorkbook exports the inventory as an xlsx workbook with a "hosts"
// sheet (one column per variable) and a "groups" sheet (one row per membership).
func WriteWorkbook(w io.Writer, inv *models.Inventory) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hostsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(groupsSheet); err != nil {
		return err
	}

	varNames := collectVarNames(inv)
	header := []any{"host", "groups"}
	for _, v := range varNames {
		header = append(header, v)
	}
	if err := setRow(f, hostsSheet, 1, header); err != nil {
		return err
	}

	for i, name := range inv.HostNames() {
		h := inv.Hosts[name]
		groups := append([]string(nil), h.Groups...)
		sort.Strings(groups)
		row := []any{h.Name, strings.Join(groups, ",")}
		for _, v := range varNames {
			row = append(row, cellValue(h.Vars, v))
		}
		if err := setRow(f, hostsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, groupsSheet, 1, []any{"group", "host"}); err != nil {
		return err
	}
	line := 2
	for _, name := range inv.GroupNames() {
		for _, host := range inv.Groups[name].Hosts {
			if err := setRow(f, groupsSheet, line, []any{name, host}); err != nil {
				return err
			}
			line++
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func collectVarNames(inv *models.Inventory) []string {
	seen := map[string]struct{}{}
	for _, h := range inv.Hosts {
		for k := range h.Vars {
			seen[k] = struct{}{}
		}
	}
	return util.SortedKeys(seen)
}

func cellValue(vars map[string]any, key string) any {
	v, ok := vars[key]
	if !ok {
		return nil
	}
	if _, unset := v.(models.UnsetValue); unset {
		return nil
	}
	return v
}

package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/util"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

// RowResult is the outcome of mapping one row: either a host with its
// groups, or a skip carrying the reason.
type RowResult struct {
	Host   *models.Host
	Groups []string
	Skip   *srvErrors.RowError
}

func (r RowResult) Skipped() bool {
	return r.Skip != nil
}

func skipped(input string, reason srvErrors.SkipReason, detail string) RowResult {
	return RowResult{Skip: srvErrors.NewRowError(input, reason, detail)}
}

// RowMapper turns rows into hosts according to an input's mappings.
type RowMapper struct{}

func NewRowMapper() *RowMapper {
	return &RowMapper{}
}

// Map applies the input's transforms, then reads the host name, variables
// and group names from the row. It never fails: rows that cannot produce a
// host are returned as skipped.
func (m *RowMapper) Map(input models.Input, row models.Row) RowResult {
	for _, t := range input.Transforms {
		v, ok := row.Get(t.Field)
		if !ok {
			return skipped(input.Name, srvErrors.SkipTransformFieldMissing, t.Field)
		}
		s, ok := nameValue(v)
		if !ok {
			return skipped(input.Name, srvErrors.SkipTransformFieldMissing, t.Field)
		}
		match := t.Pattern.FindStringSubmatch(s)
		if match == nil {
			return skipped(input.Name, srvErrors.SkipTransformNoMatch, t.Field)
		}
		extracted := match[0]
		if len(match) > 1 {
			extracted = match[1]
		}
		row = row.With(t.Out, extracted)
	}

	raw, ok := row.Get(input.HostField)
	if !ok {
		return skipped(input.Name, srvErrors.SkipHostFieldMissing, input.HostField)
	}
	name, ok := trimmedName(raw)
	if !ok {
		return skipped(input.Name, srvErrors.SkipHostEmpty, input.HostField)
	}

	host := models.NewHost(name)
	for _, column := range util.SortedKeys(input.VarFields) {
		v, ok := row.Get(column)
		switch {
		case !ok:
			host.Vars[input.VarFields[column]] = models.Unset
		case v == nil:
			// NULL leaves the variable undefined
		default:
			host.Vars[input.VarFields[column]] = varValue(v)
		}
	}

	return RowResult{Host: host, Groups: m.groups(input, row, name)}
}

func (m *RowMapper) groups(input models.Input, row models.Row, host string) []string {
	var groups []string
	seen := map[string]struct{}{}
	add := func(g string) {
		if g == "" {
			return
		}
		if g == models.ReservedMetaKey {
			zap.S().Named("mapper").Warnw("ignoring reserved group name", "input", input.Name, "host", host)
			return
		}
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		groups = append(groups, g)
	}

	for _, column := range input.GroupFields {
		if v, ok := row.Get(column); ok {
			g, _ := trimmedName(v)
			add(g)
		}
	}

	if len(input.Templates) == 0 {
		return groups
	}

	cols := row.Map()
	data := make(map[string]string, len(cols))
	for c, v := range cols {
		s, _ := nameValue(v)
		data[c] = s
	}
	for _, tmpl := range input.Templates {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			zap.S().Named("mapper").Debugw("group template failed", "input", input.Name, "host", host, "template", tmpl.Name(), "error", err)
			continue
		}
		add(strings.TrimSpace(sb.String()))
	}

	return groups
}

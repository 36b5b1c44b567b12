package emitter

import (
	"fmt"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/util"
)

// Mode selects which document is rendered.
type Mode string

const (
	// ModeList renders every group plus _meta.hostvars.
	ModeList Mode = "list"
	// ModeHost renders the variables of a single host.
	ModeHost Mode = "host"
)

type GroupDocument struct {
	Hosts []string       `json:"hosts" yaml:"hosts"`
	Vars  map[string]any `json:"vars,omitempty" yaml:"vars,omitempty"`
}

type MetaDocument struct {
	HostVars map[string]map[string]any `json:"hostvars" yaml:"hostvars"`
}

// Render builds the document for mode. host is only used in ModeHost.
func Render(inv *models.Inventory, mode Mode, host string) (any, error) {
	switch mode {
	case ModeList:
		return List(inv), nil
	case ModeHost:
		return HostVars(inv, host), nil
	default:
		return nil, fmt.Errorf("unknown render mode %q", mode)
	}
}

// List returns the group mapping with the reserved _meta key.
func List(inv *models.Inventory) map[string]any {
	doc := make(map[string]any, len(inv.Groups)+1)
	for name, g := range inv.Groups {
		hosts := make([]string, len(g.Hosts))
		copy(hosts, g.Hosts)
		doc[name] = GroupDocument{Hosts: hosts, Vars: util.Copy(g.Vars)}
	}

	meta := MetaDocument{HostVars: make(map[string]map[string]any, len(inv.Hosts))}
	for name, h := range inv.Hosts {
		meta.HostVars[name] = util.Copy(h.Vars)
	}
	doc[models.ReservedMetaKey] = meta

	return doc
}

// HostVars returns the variables of host, or an empty mapping for unknown hosts.
func HostVars(inv *models.Inventory, host string) map[string]any {
	h, ok := inv.Host(host)
	if !ok {
		return map[string]any{}
	}
	return util.Copy(h.Vars)
}

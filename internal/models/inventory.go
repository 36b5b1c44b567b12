package models

import "github.com/ndinv/sql-inventory/internal/util"

// ReservedMetaKey is the list-mode key carrying host variables. No group may use it.
const ReservedMetaKey = "_meta"

// Host is one inventory entry. Vars accumulate across rows, last write wins.
type Host struct {
	Name   string
	Vars   map[string]any
	Groups []string
}

func NewHost(name string) *Host {
	return &Host{Name: name, Vars: map[string]any{}}
}

// Group is a named set of hosts. Hosts keeps first-seen order.
type Group struct {
	Name  string
	Hosts []string
	Vars  map[string]any

	members map[string]struct{}
}

func NewGroup(name string) *Group {
	return &Group{Name: name, Hosts: []string{}, Vars: map[string]any{}, members: map[string]struct{}{}}
}

// AddHost registers host once. It returns false if the host was already a member.
func (g *Group) AddHost(host string) bool {
	if g.members == nil {
		g.members = make(map[string]struct{}, len(g.Hosts))
		for _, h := range g.Hosts {
			g.members[h] = struct{}{}
		}
	}
	if _, ok := g.members[host]; ok {
		return false
	}
	g.members[host] = struct{}{}
	g.Hosts = append(g.Hosts, host)
	return true
}

// Stats collects diagnostics about one build.
type Stats struct {
	Inputs       int
	FailedInputs []string
	Rows         int
	MappedRows   int
	SkippedRows  int
	// SkippedByReason counts skipped rows per skip reason.
	SkippedByReason map[string]int
}

// Inventory is the result of one build.
type Inventory struct {
	Groups map[string]*Group
	Hosts  map[string]*Host
	Stats  Stats
}

func NewInventory() *Inventory {
	return &Inventory{
		Groups: map[string]*Group{},
		Hosts:  map[string]*Host{},
		Stats:  Stats{SkippedByReason: map[string]int{}},
	}
}

func (i *Inventory) Host(name string) (*Host, bool) {
	h, ok := i.Hosts[name]
	return h, ok
}

func (i *Inventory) GroupNames() []string {
	return util.SortedKeys(i.Groups)
}

func (i *Inventory) HostNames() []string {
	return util.SortedKeys(i.Hosts)
}

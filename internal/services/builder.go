package services

import (
	"github.com/ndinv/sql-inventory/internal/models"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

// InventoryBuilder accumulates mapped hosts into an inventory.
// It is not safe for concurrent use.
type InventoryBuilder struct {
	inv *models.Inventory
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{inv: models.NewInventory()}
}

// Add upserts host and registers it in every named group. Vars are merged
// with last write wins, group membership is a union.
func (b *InventoryBuilder) Add(host *models.Host, groups []string) {
	if host == nil || host.Name == "" {
		b.Skip(srvErrors.NewRowError("", srvErrors.SkipHostEmpty, ""))
		return
	}

	existing, ok := b.inv.Hosts[host.Name]
	if !ok {
		existing = models.NewHost(host.Name)
		b.inv.Hosts[host.Name] = existing
	}
	for k, v := range host.Vars {
		existing.Vars[k] = v
	}

	for _, name := range groups {
		if name == "" {
			continue
		}
		g, ok := b.inv.Groups[name]
		if !ok {
			g = models.NewGroup(name)
			b.inv.Groups[name] = g
		}
		if g.AddHost(host.Name) {
			existing.Groups = append(existing.Groups, name)
		}
	}

	b.inv.Stats.MappedRows++
}

// Skip records a row that produced no host.
func (b *InventoryBuilder) Skip(err *srvErrors.RowError) {
	b.inv.Stats.SkippedRows++
	b.inv.Stats.SkippedByReason[string(err.Reason)]++
}

// RecordInput records a successfully executed input and its row count.
func (b *InventoryBuilder) RecordInput(rows int) {
	b.inv.Stats.Inputs++
	b.inv.Stats.Rows += rows
}

// RecordFailedInput records an optional input whose query failed.
func (b *InventoryBuilder) RecordFailedInput(name string) {
	b.inv.Stats.Inputs++
	b.inv.Stats.FailedInputs = append(b.inv.Stats.FailedInputs, name)
}

// Finalize returns the accumulated inventory.
func (b *InventoryBuilder) Finalize() *models.Inventory {
	return b.inv
}

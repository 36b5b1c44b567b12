package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/pkg/scheduler"
)

// InventoryBuilder builds a fresh inventory snapshot.
type InventoryBuilder interface {
	Build(ctx context.Context) (*models.Inventory, error)
}

type Handler struct {
	inventorySrv InventoryBuilder
	sched        *scheduler.Scheduler[*models.Inventory]
}

func New(inventorySrv InventoryBuilder, sched *scheduler.Scheduler[*models.Inventory]) *Handler {
	return &Handler{
		inventorySrv: inventorySrv,
		sched:        sched,
	}
}

// RegisterHandlers mounts the inventory routes on router.
func RegisterHandlers(router *gin.RouterGroup, h *Handler) {
	router.GET("/inventory", h.GetInventory)
	router.GET("/hosts/:name", h.GetHost)
}

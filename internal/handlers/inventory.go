package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/emitter"
	"github.com/ndinv/sql-inventory/internal/models"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

var contentTypes = map[emitter.Format]string{
	emitter.FormatJSON: "application/json; charset=utf-8",
	emitter.FormatYAML: "application/yaml; charset=utf-8",
}

// GetInventory returns the full list document
// (GET /inventory)
func (h *Handler) GetInventory(c *gin.Context) {
	h.render(c, emitter.ModeList, "")
}

// GetHost returns the variables of one host, {} when unknown
// (GET /hosts/{name})
func (h *Handler) GetHost(c *gin.Context) {
	h.render(c, emitter.ModeHost, c.Param("name"))
}

func (h *Handler) render(c *gin.Context, mode emitter.Mode, host string) {
	format, err := emitter.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pretty := c.Query("pretty") == "true"

	inv, err := h.build(c.Request.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			zap.S().Named("inventory_handler").Debugw("request canceled during build")
			c.Abort()
			return
		}
		zap.S().Named("inventory_handler").Errorw("failed to build inventory", "error", err)
		status := http.StatusInternalServerError
		if srvErrors.IsQueryError(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	doc, err := emitter.Render(inv, mode, host)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := emitter.Encode(&buf, doc, format, pretty); err != nil {
		zap.S().Named("inventory_handler").Errorw("failed to encode inventory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode inventory"})
		return
	}

	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}

// build runs the inventory build on the scheduler so builds never overlap.
func (h *Handler) build(ctx context.Context) (*models.Inventory, error) {
	if h.sched == nil {
		return h.inventorySrv.Build(ctx)
	}
	return h.sched.Submit(h.inventorySrv.Build).Wait(ctx)
}

package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/export"
)

// InventoryStats handles GET /api/stats/inventory.
func (h *Handler) InventoryStats(c *gin.Context) {
	stats, err := h.store.InventoryStats(c.Request.Context(), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export handles GET /api/export?tables=orders,blocks&full=true.
func (h *Handler) Export(c *gin.Context) {
	full, _ := strconv.ParseBool(c.Query("full"))
	tables, err := export.ParseTables(c.Query("tables"), full)
	if errors.Is(err, export.ErrUnknownTable) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(c.Request.Context(), h.store, tables, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

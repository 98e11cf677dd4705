package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

type stockRequest struct {
	Type      string              `json:"type" binding:"required"`
	Diameter  decimal.NullDecimal `json:"diameter"`
	Quantity  int                 `json:"quantity" binding:"min=0"`
	Materials []string            `json:"compatible_materials"`
}

func (r stockRequest) input() store.StockInput {
	return store.StockInput{Type: r.Type, Diameter: r.Diameter, Quantity: r.Quantity, Materials: r.Materials}
}

// ListStock handles GET /api/tools/stock.
func (h *Handler) ListStock(c *gin.Context) {
	stock, err := h.store.ListStock(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if stock == nil {
		stock = []model.ToolStock{}
	}
	c.JSON(http.StatusOK, stock)
}

// AddStock handles POST /api/tools/stock.
func (h *Handler) AddStock(c *gin.Context) {
	var req stockRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.store.AddStock(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// EditStock handles PUT /api/tools/stock/:id.
func (h *Handler) EditStock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req stockRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.store.EditStock(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type installRequest struct {
	Type    string `json:"type" binding:"required"`
	Machine string `json:"machine" binding:"required"`
}

// Install handles POST /api/tools/install.
func (h *Handler) Install(c *gin.Context) {
	var req installRequest
	if !bindJSON(c, &req) {
		return
	}
	tool, err := h.store.InstallFromStock(c.Request.Context(), req.Type, req.Machine)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tool)
}

// ListInstalled handles GET /api/tools/installed.
func (h *Handler) ListInstalled(c *gin.Context) {
	tools, err := h.store.ListInstalled(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if tools == nil {
		tools = []model.InstalledTool{}
	}
	c.JSON(http.StatusOK, tools)
}

type installedRequest struct {
	Type      string              `json:"type" binding:"required"`
	Diameter  decimal.NullDecimal `json:"diameter"`
	Machine   string              `json:"machine" binding:"required"`
	Materials []string            `json:"compatible_materials"`
}

// EditInstalled handles PUT /api/tools/installed/:id.
func (h *Handler) EditInstalled(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req installedRequest
	if !bindJSON(c, &req) {
		return
	}
	tool, err := h.store.EditInstalled(c.Request.Context(), id, store.InstalledEdit{
		Type:      req.Type,
		Diameter:  req.Diameter,
		Machine:   req.Machine,
		Materials: req.Materials,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tool)
}

// Uninstall handles DELETE /api/tools/installed/:id?reinstall=true.
func (h *Handler) Uninstall(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	reinstall := false
	if raw := c.Query("reinstall"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "reinstall must be true or false"})
			return
		}
		reinstall = v
	}

	replacement, err := h.store.Uninstall(c.Request.Context(), id, reinstall)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replacement": replacement})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

type reconcileRequest struct {
	Codes       []string `json:"codes"`
	UsedBlockID int64    `json:"used_block_id" binding:"min=0"`
	NewBlockID  int64    `json:"new_block_id" binding:"min=0"`
	Machine     string   `json:"machine"`
	ModelCount  *int     `json:"model_count" binding:"omitempty,min=0"`
	// PerCodeCounts is the raw override list, e.g. "5,,3".
	PerCodeCounts string `json:"per_code_counts"`
}

// Reconcile handles POST /api/orders/reconcile.
func (h *Handler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if !bindJSON(c, &req) {
		return
	}

	modelCount := 1
	if req.ModelCount != nil {
		modelCount = *req.ModelCount
	}

	res, err := h.store.Reconcile(c.Request.Context(), store.ReconcileRequest{
		Codes:       req.Codes,
		UsedBlockID: req.UsedBlockID,
		NewBlockID:  req.NewBlockID,
		Machine:     req.Machine,
		ModelCount:  modelCount,
		Overrides:   store.ParseOverrides(req.PerCodeCounts),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListOrders handles GET /api/orders.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context(), store.OrderFilter{
		Material: c.Query("material"),
		Shade:    c.Query("shade"),
		Machine:  c.Query("machine"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

type editOrderRequest struct {
	OrderCode  string `json:"order_code" binding:"required"`
	Material   string `json:"material" binding:"required"`
	Brand      string `json:"brand"`
	Shade      string `json:"shade"`
	Machine    string `json:"machine"`
	ModelCount int    `json:"model_count" binding:"min=0"`
}

// EditOrder handles PUT /api/orders/:id.
func (h *Handler) EditOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req editOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.store.EditOrder(c.Request.Context(), id, store.OrderEdit{
		OrderCode:  req.OrderCode,
		Material:   req.Material,
		Brand:      req.Brand,
		Shade:      req.Shade,
		Machine:    req.Machine,
		ModelCount: req.ModelCount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteOrder(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

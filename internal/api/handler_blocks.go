package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

type createBlockRequest struct {
	Material  string `json:"material" binding:"required"`
	Shade     string `json:"shade" binding:"required"`
	Thickness int    `json:"thickness" binding:"required,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Brand     string `json:"brand"`
}

// ListBlocks handles GET /api/blocks.
func (h *Handler) ListBlocks(c *gin.Context) {
	state := model.BlockState(c.Query("state"))
	if state != "" && !state.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "state must be new or used"})
		return
	}

	listing, err := h.store.ListBlocks(c.Request.Context(), store.BlockFilter{
		Material: c.Query("material"),
		Shade:    c.Query("shade"),
		State:    state,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateBlock handles POST /api/blocks.
func (h *Handler) CreateBlock(c *gin.Context) {
	var req createBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	block, err := h.store.CreateNewBlock(c.Request.Context(), store.NewBlockInput{
		Material:  req.Material,
		Shade:     req.Shade,
		Thickness: req.Thickness,
		Quantity:  req.Quantity,
		Brand:     req.Brand,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// GetBlock handles GET /api/blocks/:id.
func (h *Handler) GetBlock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	block, err := h.store.GetBlock(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

type editBlockRequest struct {
	Material         string           `json:"material" binding:"required"`
	Brand            string           `json:"brand"`
	Shade            string           `json:"shade" binding:"required"`
	Thickness        int              `json:"thickness" binding:"required,gt=0"`
	Quantity         int              `json:"quantity" binding:"min=0"`
	State            model.BlockState `json:"state" binding:"required,oneof=new used"`
	Barcode          string           `json:"barcode"`
	FresedModelCount int              `json:"fresed_model_count" binding:"min=0"`
	FresedOrderCodes []string         `json:"fresed_order_codes"`
}

// EditBlock handles PUT /api/blocks/:id.
func (h *Handler) EditBlock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req editBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	block, err := h.store.EditBlock(c.Request.Context(), id, store.BlockEdit{
		Material:         req.Material,
		Brand:            req.Brand,
		Shade:            req.Shade,
		Thickness:        req.Thickness,
		Quantity:         req.Quantity,
		State:            req.State,
		Barcode:          req.Barcode,
		FresedModelCount: req.FresedModelCount,
		FresedOrderCodes: req.FresedOrderCodes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteBlock handles DELETE /api/blocks/:id. The response is the history
// snapshot taken before removal.
func (h *Handler) DeleteBlock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	snapshot, err := h.store.DeleteBlock(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListBlockHistory handles GET /api/block-history.
func (h *Handler) ListBlockHistory(c *gin.Context) {
	history, err := h.store.ListBlockHistory(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if history == nil {
		history = []model.BlockHistory{}
	}
	c.JSON(http.StatusOK, history)
}

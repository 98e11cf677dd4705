package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

type pendingRequest struct {
	OrderCode string `json:"order_code" binding:"required"`
}

// ListPending handles GET /api/pending.
func (h *Handler) ListPending(c *gin.Context) {
	pending, err := h.store.ListPending(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if pending == nil {
		pending = []model.PendingOrder{}
	}
	c.JSON(http.StatusOK, pending)
}

// AddPending handles POST /api/pending. A code already in the queue answers
// 200 with already_pending set instead of 201.
func (h *Handler) AddPending(c *gin.Context) {
	var req pendingRequest
	if !bindJSON(c, &req) {
		return
	}

	pending, created, err := h.store.AddPending(c.Request.Context(), req.OrderCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"pending": pending, "already_pending": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pending": pending, "already_pending": false})
}

// EditPending handles PUT /api/pending/:id.
func (h *Handler) EditPending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req pendingRequest
	if !bindJSON(c, &req) {
		return
	}

	pending, err := h.store.EditPending(c.Request.Context(), id, req.OrderCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// DeletePending handles DELETE /api/pending/:ref, where ref is an entry id or,
// failing that, an order code.
func (h *Handler) DeletePending(c *gin.Context) {
	ref := c.Param("ref")
	ctx := c.Request.Context()

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		err := h.store.DeletePending(ctx, id)
		if err == nil {
			c.Status(http.StatusNoContent)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			h.fail(c, err)
			return
		}
	}

	if err := h.store.DeletePendingByCode(ctx, ref); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

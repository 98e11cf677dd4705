package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/store"
)

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.Settings(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PutSettings handles PUT /api/settings with a body mapping keys to lists.
func (h *Handler) PutSettings(c *gin.Context) {
	var req map[string][]string
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.SaveSettings(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSettings(c)
}

// GetSetting handles GET /api/settings/:key.
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if !store.IsListKey(key) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown setting"})
		return
	}
	values, err := h.store.GetList(c.Request.Context(), key, store.DefaultLists[key])
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "values": values})
}

type settingRequest struct {
	Values []string `json:"values" binding:"required"`
}

// PutSetting handles PUT /api/settings/:key.
func (h *Handler) PutSetting(c *gin.Context) {
	key := c.Param("key")
	if !store.IsListKey(key) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown setting"})
		return
	}
	var req settingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.SetList(c.Request.Context(), key, req.Values); err != nil {
		h.fail(c, err)
		return
	}
	h.GetSetting(c)
}

// GetMachineDocs handles GET /api/machines/docs.
func (h *Handler) GetMachineDocs(c *gin.Context) {
	docs, err := h.store.MachineDocs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if docs == nil {
		docs = []store.MachineDoc{}
	}
	c.JSON(http.StatusOK, docs)
}

// PutMachineDocs handles PUT /api/machines/docs.
func (h *Handler) PutMachineDocs(c *gin.Context) {
	var req []store.MachineDoc
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.SaveMachineDocs(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	h.GetMachineDocs(c)
}

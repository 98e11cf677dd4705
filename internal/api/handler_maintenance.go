package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/schedule"
	"milling-shop-backend/internal/store"
)

const defaultGroup = "fresadoras"

type activityRequest struct {
	Machine       string `json:"machine" binding:"required"`
	Activity      string `json:"activity" binding:"required"`
	IntervalCount int    `json:"interval_count" binding:"min=0"`
	IntervalUnit  string `json:"interval_unit"`
	Description   string `json:"description"`
}

func (r activityRequest) input() store.ActivityInput {
	return store.ActivityInput{
		Machine:       r.Machine,
		Activity:      r.Activity,
		IntervalCount: r.IntervalCount,
		IntervalUnit:  r.IntervalUnit,
		Description:   r.Description,
	}
}

type maintenanceResponse struct {
	Group      string               `json:"group"`
	Machines   []string             `json:"machines"`
	Activities []schedule.Activity  `json:"activities"`
	Records    []schedule.Scheduled `json:"records"`
	Upcoming   []schedule.Scheduled `json:"upcoming"`
}

// groupRecords resolves a machine group (unknown names fall back to the
// milling machines) and returns its machines and their records.
func (h *Handler) groupRecords(ctx context.Context, group string) (string, []string, []model.MaintenanceRecord, error) {
	key, ok := store.MachineGroups[group]
	if !ok {
		group, key = defaultGroup, store.MachineGroups[defaultGroup]
	}
	machines, err := h.store.GetList(ctx, key, store.DefaultLists[key])
	if err != nil {
		return "", nil, nil, err
	}
	all, err := h.store.ListMaintenance(ctx)
	if err != nil {
		return "", nil, nil, err
	}

	inGroup := make(map[string]bool, len(machines))
	for _, m := range machines {
		inGroup[m] = true
	}
	records := make([]model.MaintenanceRecord, 0, len(all))
	for _, rec := range all {
		if inGroup[rec.Machine] {
			records = append(records, rec)
		}
	}
	return group, machines, records, nil
}

// ListMaintenance handles GET /api/maintenance?group=fresadoras|hornos|aspiradoras.
func (h *Handler) ListMaintenance(c *gin.Context) {
	group, machines, records, err := h.groupRecords(c.Request.Context(), c.Query("group"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenanceResponse{
		Group:      group,
		Machines:   machines,
		Activities: schedule.DefaultActivities,
		Records:    schedule.Annotate(records),
		Upcoming:   schedule.Upcoming(records, h.now()),
	})
}

// UpcomingMaintenance handles GET /api/maintenance/upcoming.
func (h *Handler) UpcomingMaintenance(c *gin.Context) {
	_, _, records, err := h.groupRecords(c.Request.Context(), c.Query("group"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.Upcoming(records, h.now()))
}

// RecordActivity handles POST /api/maintenance.
func (h *Handler) RecordActivity(c *gin.Context) {
	var req activityRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.store.RecordActivity(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule.Annotate([]model.MaintenanceRecord{rec})[0])
}

// EditMaintenance handles PUT /api/maintenance/:id.
func (h *Handler) EditMaintenance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req activityRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.store.EditMaintenance(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.Annotate([]model.MaintenanceRecord{rec})[0])
}

// DeleteMaintenance handles DELETE /api/maintenance/:id. Discarding an
// upcoming activity uses the same route.
func (h *Handler) DeleteMaintenance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteMaintenance(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkDone handles POST /api/maintenance/:id/done.
func (h *Handler) MarkDone(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := h.store.MarkDone(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule.Annotate([]model.MaintenanceRecord{rec})[0])
}

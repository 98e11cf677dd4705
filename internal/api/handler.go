package api

import (
	"time"

	"github.com/sirupsen/logrus"

	"milling-shop-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		store: s,
		log:   logger.WithField("module", "api"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

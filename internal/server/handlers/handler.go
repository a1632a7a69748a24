// Package handlers contains the gin HTTP handlers for the Warren REST API.
package handlers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/server/services"
	"github.com/warrenhq/warren/pkg/logger"
)

// Handler carries the shared dependencies of every route.
type Handler struct {
	db       *gorm.DB
	tree     *services.TreeService
	history  *services.HistoryService
	executor *services.Executor
	logger   *zap.Logger
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		db:       db,
		tree:     services.NewTreeService(db),
		history:  services.NewHistoryService(db),
		executor: services.NewExecutor(),
		logger:   logger.WithModule("handlers"),
	}
}

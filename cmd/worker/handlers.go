package main

import (
	"github.com/hibiken/asynq"

	categoryJob "photobook-backend/internal/domains/category/job"
	"photobook-backend/internal/shared"
	"photobook-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	integrityScan *categoryJob.IntegrityScanHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		integrityScan: categoryJob.NewIntegrityScanHandler(c.CategoryRepo, c.ProductRepo),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCatalogIntegrityScan, h.integrityScan.ProcessTask)
}

package main

import (
	"github.com/hibiken/asynq"

	mediaJob "portfolio-backend/internal/domains/media/job"
	"portfolio-backend/internal/infrastructure/queue"
	"portfolio-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processImage       *mediaJob.ProcessImageHandler
	deleteObjects      *mediaJob.DeleteObjectsHandler
	backfillThumbnails *mediaJob.BackfillThumbnailsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processImage:       mediaJob.NewProcessImageHandler(c.MediaService),
		deleteObjects:      mediaJob.NewDeleteObjectsHandler(c.MediaService),
		backfillThumbnails: mediaJob.NewBackfillThumbnailsHandler(c.MediaService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Media tasks
	mux.HandleFunc(queue.TypeMediaProcessImage, h.processImage.ProcessTask)
	mux.HandleFunc(queue.TypeMediaDeleteObjects, h.deleteObjects.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(queue.TypeMediaBackfillThumbnails, h.backfillThumbnails.ProcessTask)
}

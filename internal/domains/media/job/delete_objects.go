package job

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-backend/internal/domains/media/service"
	"portfolio-backend/internal/infrastructure/queue"

	"github.com/hibiken/asynq"
)

// ================================================
// DELETE OBJECTS JOB HANDLER
// ================================================

type DeleteObjectsHandler struct {
	mediaService service.JobService
}

func NewDeleteObjectsHandler(mediaService service.JobService) *DeleteObjectsHandler {
	return &DeleteObjectsHandler{mediaService: mediaService}
}

func (h *DeleteObjectsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DeleteObjectsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal delete objects payload: %v: %w", err, asynq.SkipRetry)
	}
	if len(payload.Keys) == 0 {
		return nil
	}

	if err := h.mediaService.DeleteObjects(ctx, payload.Keys...); err != nil {
		return fmt.Errorf("delete objects for media %s: %w", payload.MediaID, err)
	}
	return nil
}

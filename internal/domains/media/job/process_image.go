package job

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-backend/internal/domains/media/service"
	"portfolio-backend/internal/infrastructure/queue"
	"portfolio-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ================================================
// PROCESS IMAGE JOB HANDLER
// ================================================

type ProcessImageHandler struct {
	mediaService service.JobService
}

func NewProcessImageHandler(mediaService service.JobService) *ProcessImageHandler {
	return &ProcessImageHandler{mediaService: mediaService}
}

func (h *ProcessImageHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ProcessImagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal process image payload: %v: %w", err, asynq.SkipRetry)
	}

	id, err := uuid.Parse(payload.MediaID)
	if err != nil {
		return fmt.Errorf("invalid media id %q: %w", payload.MediaID, asynq.SkipRetry)
	}

	if err := h.mediaService.ProcessImage(ctx, id); err != nil {
		if service.IsGone(err) {
			logger.Info("Media gone before thumbnail job ran", map[string]interface{}{"media_id": payload.MediaID})
			return nil
		}
		if service.IsPermanent(err) {
			return fmt.Errorf("process image %s: %v: %w", payload.MediaID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("process image %s: %w", payload.MediaID, err)
	}
	return nil
}

package job

import (
	"context"
	"fmt"

	"portfolio-backend/internal/domains/media/service"
	"portfolio-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// mỗi lần chạy chỉ enqueue tối đa 500 ảnh, phần còn lại để lần sau
const backfillBatchSize = 500

type BackfillThumbnailsHandler struct {
	mediaService service.JobService
}

func NewBackfillThumbnailsHandler(mediaService service.JobService) *BackfillThumbnailsHandler {
	return &BackfillThumbnailsHandler{mediaService: mediaService}
}

func (h *BackfillThumbnailsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	logger.Info("Starting BackfillThumbnails job", nil)
	queued, err := h.mediaService.BackfillThumbnails(ctx, backfillBatchSize)
	if err != nil {
		return fmt.Errorf("backfill thumbnails: %w", err)
	}
	logger.Info("Completed BackfillThumbnails job", map[string]interface{}{
		"queued_count": queued,
	})
	return nil
}

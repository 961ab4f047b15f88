package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task types
const (
	TypeMediaProcessImage       = "media:process_image"
	TypeMediaDeleteObjects      = "media:delete_object"
	TypeMediaBackfillThumbnails = "media:backfill_thumbnails"
)

// Queue names, trọng số khai báo ở cmd/worker
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// Enqueuer là phần của *asynq.Client mà services cần
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ProcessImagePayload - tạo thumbnail cho một media record
type ProcessImagePayload struct {
	MediaID string `json:"media_id"`
}

// DeleteObjectsPayload - xóa object khỏi storage sau khi record đã bị xóa
type DeleteObjectsPayload struct {
	MediaID string   `json:"media_id"`
	Keys    []string `json:"keys"`
}

func NewProcessImageTask(mediaID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ProcessImagePayload{MediaID: mediaID})
	if err != nil {
		return nil, fmt.Errorf("marshal process image payload: %w", err)
	}
	return asynq.NewTask(
		TypeMediaProcessImage,
		payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	), nil
}

func NewDeleteObjectsTask(mediaID string, keys []string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteObjectsPayload{MediaID: mediaID, Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("marshal delete objects payload: %w", err)
	}
	return asynq.NewTask(
		TypeMediaDeleteObjects,
		payload,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

func NewBackfillThumbnailsTask() *asynq.Task {
	return asynq.NewTask(
		TypeMediaBackfillThumbnails,
		nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
}

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"portfolio-backend/internal/domains/media/model"
	"portfolio-backend/internal/domains/media/repository"
	"portfolio-backend/internal/infrastructure/queue"
	"portfolio-backend/internal/infrastructure/storage"

	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	ListMedia(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error)
	GetMedia(ctx context.Context, id uuid.UUID) (*model.Media, error)
	// CreateMedia nhận data: URI (lưu vào storage) hoặc http(s) link (chỉ lưu reference)
	CreateMedia(ctx context.Context, uploadedBy *uuid.UUID, req model.CreateMediaRequest) (*model.Media, error)
	// Upload lưu từng multipart file thành một record
	Upload(ctx context.Context, uploadedBy *uuid.UUID, files []FileInput, altText *string) ([]*model.Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.MediaStats, error)
}

// JobService là phần worker gọi qua asynq handlers
type JobService interface {
	ProcessImage(ctx context.Context, id uuid.UUID) error
	DeleteObjects(ctx context.Context, keys ...string) error
	BackfillThumbnails(ctx context.Context, limit int) (int, error)
}

// Service gom API của handler và worker
type Service interface {
	ServiceInterface
	JobService
}

// FileInput là một file part đã mở từ multipart form
type FileInput struct {
	Filename string
	Reader   io.Reader
}

type mediaService struct {
	repo     repository.Repository
	store    storage.ObjectStore
	images   *storage.ImageProcessor
	tasks    queue.Enqueuer
	maxBytes int64
	now      func() time.Time
}

func NewMediaService(
	repo repository.Repository,
	store storage.ObjectStore,
	images *storage.ImageProcessor,
	tasks queue.Enqueuer,
	maxBytes int64,
) Service {
	return &mediaService{
		repo:     repo,
		store:    store,
		images:   images,
		tasks:    tasks,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *mediaService) ListMedia(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error) {
	return s.repo.List(ctx, filter)
}

func (s *mediaService) GetMedia(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *mediaService) CreateMedia(ctx context.Context, uploadedBy *uuid.UUID, req model.CreateMediaRequest) (*model.Media, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(req.URL, "data:") {
		data, err := s.decodeDataURI(req.URL)
		if err != nil {
			return nil, err
		}
		return s.save(ctx, uploadedBy, req.OriginalFilename, data, req.AltText)
	}

	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return nil, model.ErrInvalidDataURI
	}

	// link ngoài: không có bytes, mimeType lấy từ request hoặc đoán theo extension
	mimeType := mime.TypeByExtension(strings.ToLower(path.Ext(req.OriginalFilename)))
	if req.MimeType != nil {
		mimeType = *req.MimeType
	}
	if mimeType == "" {
		return nil, validation.Errors{
			"mimeType": validation.NewError("validation_mime_required", "mimeType is required for external links"),
		}
	}
	// bỏ parameters kiểu "; charset=utf-8", ParseMediaType trả về lowercase
	mimeType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return nil, validation.Errors{
			"mimeType": validation.NewError("validation_mime_invalid", "mimeType is not a valid media type"),
		}
	}
	if !allowedType(mimeType) {
		return nil, model.ErrUnsupportedType.WithDetails(map[string]string{"mimeType": mimeType})
	}

	created, err := s.repo.Create(ctx, &model.Media{
		Filename:         path.Base(req.OriginalFilename),
		OriginalFilename: req.OriginalFilename,
		MimeType:         mimeType,
		URL:              req.URL,
		AltText:          req.AltText,
		UploadedBy:       uploadedBy,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("media_id", created.ID.String()).Str("url", created.URL).Msg("External media registered")
	return created, nil
}

func (s *mediaService) Upload(ctx context.Context, uploadedBy *uuid.UUID, files []FileInput, altText *string) ([]*model.Media, error) {
	if len(files) == 0 {
		return nil, model.ErrNoFiles
	}

	// đọc và kiểm tra hết các part trước, một file lỗi thì không ghi gì cả
	parts := make([]part, 0, len(files))
	for _, f := range files {
		name := strings.TrimSpace(f.Filename)

		// đọc dư 1 byte để phát hiện file vượt limit
		data, err := io.ReadAll(io.LimitReader(f.Reader, s.maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", name, err)
		}
		if int64(len(data)) > s.maxBytes {
			return nil, model.ErrFileTooLarge.WithDetails(map[string]string{"file": name})
		}

		p, err := sniff(name, data)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	items := make([]*model.Media, 0, len(parts))
	for _, p := range parts {
		m, err := s.persist(ctx, uploadedBy, p, altText)
		if err != nil {
			s.rollback(ctx, items)
			return nil, err
		}
		items = append(items, m)
	}

	for _, m := range items {
		if m.CanThumbnail() {
			s.enqueueProcessImage(ctx, m.ID)
		}
	}
	return items, nil
}

// rollback xóa record và object của các file đã lưu trong một lần upload lỗi
func (s *mediaService) rollback(ctx context.Context, items []*model.Media) {
	for _, m := range items {
		if _, err := s.repo.Delete(ctx, m.ID); err != nil {
			log.Error().Err(err).Str("media_id", m.ID.String()).Msg("Failed to roll back media record")
		}
		if m.StorageKey == nil {
			continue
		}
		if err := s.store.Delete(ctx, *m.StorageKey); err != nil {
			log.Error().Err(err).Str("key", *m.StorageKey).Msg("Failed to roll back media object")
		}
	}
}

func (s *mediaService) decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, model.ErrInvalidDataURI
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return nil, model.ErrFileTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, model.ErrInvalidDataURI.Wrap(err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, model.ErrFileTooLarge
	}
	return data, nil
}

// part là một file đã đọc vào memory và sniff xong
type part struct {
	originalFilename string
	data             []byte
	mime             *mimetype.MIME
}

func sniff(originalFilename string, data []byte) (part, error) {
	if len(data) == 0 {
		return part{}, validation.Errors{"file": validation.NewError("validation_file_empty", "file is empty")}
	}

	mt := mimetype.Detect(data)
	if !allowed(mt) {
		details := map[string]string{"detected": mt.String()}
		if originalFilename != "" {
			details["file"] = originalFilename
		}
		return part{}, model.ErrUnsupportedType.WithDetails(details)
	}
	return part{originalFilename: originalFilename, data: data, mime: mt}, nil
}

// save sniff, lưu rồi enqueue thumbnail nếu định dạng hỗ trợ
func (s *mediaService) save(ctx context.Context, uploadedBy *uuid.UUID, originalFilename string, data []byte, altText *string) (*model.Media, error) {
	p, err := sniff(originalFilename, data)
	if err != nil {
		return nil, err
	}

	created, err := s.persist(ctx, uploadedBy, p, altText)
	if err != nil {
		return nil, err
	}
	if created.CanThumbnail() {
		s.enqueueProcessImage(ctx, created.ID)
	}
	return created, nil
}

// persist ghi object rồi tạo record.
// Nếu insert lỗi thì xóa object vừa ghi.
func (s *mediaService) persist(ctx context.Context, uploadedBy *uuid.UUID, p part, altText *string) (*model.Media, error) {
	id := uuid.New()
	filename := id.String() + p.mime.Extension()
	key := ObjectKey(s.now(), filename)
	originalFilename := p.originalFilename
	if originalFilename == "" {
		originalFilename = filename
	}

	url, err := s.store.Put(ctx, key, p.data, p.mime.String())
	if err != nil {
		return nil, fmt.Errorf("store media object: %w", err)
	}

	created, err := s.repo.Create(ctx, &model.Media{
		ID:               id,
		Filename:         filename,
		OriginalFilename: originalFilename,
		MimeType:         p.mime.String(),
		Size:             int64(len(p.data)),
		URL:              url,
		StorageKey:       &key,
		AltText:          altText,
		UploadedBy:       uploadedBy,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("Failed to remove orphan object")
		}
		return nil, err
	}

	log.Info().
		Str("media_id", created.ID.String()).
		Str("mime_type", created.MimeType).
		Int64("size", created.Size).
		Msg("Media stored")
	return created, nil
}

func allowed(mt *mimetype.MIME) bool {
	return allowedType(mt.String()) || mt.Is("application/pdf")
}

// allowedType: chỉ nhận ảnh và PDF, mediaType không kèm parameters
func allowedType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}

// ObjectKey: media/<yyyy>/<mm>/<filename>
func ObjectKey(t time.Time, filename string) string {
	return fmt.Sprintf("media/%04d/%02d/%s", t.Year(), int(t.Month()), filename)
}

func (s *mediaService) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Info().Str("media_id", id.String()).Msg("Media deleted")

	if deleted.StorageKey == nil {
		return nil
	}

	keys := []string{*deleted.StorageKey}
	if deleted.ThumbnailURL != nil || deleted.CanThumbnail() {
		keys = append(keys, model.ThumbnailKey(*deleted.StorageKey))
	}

	task, err := queue.NewDeleteObjectsTask(id.String(), keys)
	if err == nil {
		_, err = s.tasks.EnqueueContext(ctx, task)
	}
	if err != nil {
		log.Error().Err(err).Str("media_id", id.String()).Strs("keys", keys).Msg("Failed to enqueue object deletion")
	}
	return nil
}

func (s *mediaService) Stats(ctx context.Context) (*model.MediaStats, error) {
	return s.repo.Stats(ctx)
}

func (s *mediaService) enqueueProcessImage(ctx context.Context, id uuid.UUID) {
	task, err := queue.NewProcessImageTask(id.String())
	if err == nil {
		_, err = s.tasks.EnqueueContext(ctx, task)
	}
	if err != nil {
		log.Error().Err(err).Str("media_id", id.String()).Msg("Failed to enqueue thumbnail job")
	}
}

// ============================================
// WORKER JOBS
// ============================================

func (s *mediaService) ProcessImage(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.CanThumbnail() {
		log.Debug().Str("media_id", id.String()).Str("mime_type", m.MimeType).Msg("No thumbnail for this media, skip")
		return nil
	}

	data, err := s.store.Get(ctx, *m.StorageKey)
	if err != nil {
		return fmt.Errorf("load original: %w", err)
	}

	thumb, err := s.images.Thumbnail(data)
	if errors.Is(err, storage.ErrUndecodable) {
		// đánh dấu để backfill không enqueue lại mãi
		if markErr := s.repo.MarkThumbnailFailed(ctx, id, err.Error()); markErr != nil {
			log.Error().Err(markErr).Str("media_id", id.String()).Msg("Failed to mark thumbnail failure")
		}
		return model.ErrUndecodableImage.Wrap(err)
	}
	if err != nil {
		return err
	}

	url, err := s.store.Put(ctx, model.ThumbnailKey(*m.StorageKey), thumb, "image/jpeg")
	if err != nil {
		return fmt.Errorf("store thumbnail: %w", err)
	}

	if err := s.repo.SetThumbnail(ctx, id, url); err != nil {
		return err
	}

	evt := log.Info().Str("media_id", id.String()).Int("thumb_bytes", len(thumb))
	if w, h, err := s.images.Dimensions(thumb); err == nil {
		evt = evt.Int("width", w).Int("height", h)
	}
	evt.Msg("Thumbnail generated")
	return nil
}

func (s *mediaService) DeleteObjects(ctx context.Context, keys ...string) error {
	if err := s.store.Delete(ctx, keys...); err != nil {
		return err
	}
	log.Info().Strs("keys", keys).Msg("Media objects removed")
	return nil
}

func (s *mediaService) BackfillThumbnails(ctx context.Context, limit int) (int, error) {
	items, err := s.repo.ListImagesWithoutThumbnail(ctx, limit)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, m := range items {
		task, err := queue.NewProcessImageTask(m.ID.String())
		if err != nil {
			return queued, err
		}
		if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
			return queued, fmt.Errorf("enqueue thumbnail %s: %w", m.ID, err)
		}
		queued++
	}
	return queued, nil
}

// IsPermanent: chạy lại job cũng không thành công
func IsPermanent(err error) bool {
	return errors.Is(err, model.ErrUndecodableImage)
}

// IsGone: record bị xóa trước khi job chạy, không cần retry
func IsGone(err error) bool {
	return errors.Is(err, model.ErrMediaNotFound) || errors.Is(err, storage.ErrObjectNotFound)
}

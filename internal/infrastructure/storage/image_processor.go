package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const DefaultThumbnailSize = 300

// ErrUndecodable: bytes không phải định dạng imaging đọc được (VD svg, webp)
var ErrUndecodable = errors.New("cannot decode image")

type ImageProcessor struct {
	ThumbnailSize int
	Quality       int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{ThumbnailSize: DefaultThumbnailSize, Quality: 85}
}

// Thumbnail resize ảnh vừa khung ThumbnailSize x ThumbnailSize (giữ tỉ lệ), encode JPEG.
// Ảnh nhỏ hơn khung không bị phóng to.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	thumb := imaging.Fit(img, p.ThumbnailSize, p.ThumbnailSize, imaging.Lanczos)

	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, thumb, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}

// Dimensions đọc kích thước ảnh mà không decode toàn bộ
func (p *ImageProcessor) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("not an image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

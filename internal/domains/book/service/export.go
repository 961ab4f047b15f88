package service

import (
	"context"
	"fmt"
	"io"

	"portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/domains/book/repository"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Library"

var exportHeaders = []string{
	"ID",
	"Title",
	"Author",
	"Category",
	"Published",
	"Downloads",
	"File URL",
	"Cover URL",
	"Created At",
	"Updated At",
}

// Exporter ghi toàn bộ thư viện (kể cả bản nháp) ra file xlsx
type Exporter struct {
	repo repository.Repository
}

func NewExporter(repo repository.Repository) *Exporter {
	return &Exporter{repo: repo}
}

// Export ghi workbook vào w, trả về số sách đã export
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	books, err := e.repo.List(ctx, model.BookFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list books: %w", err)
	}

	f, err := BuildWorkbook(books)
	if err != nil {
		return 0, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("failed to write excel file: %w", err)
	}
	return len(books), nil
}

// BuildWorkbook: row 1 là header, data bắt đầu từ row 2
func BuildWorkbook(books []*model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle)
	}

	for i, b := range books {
		row := []interface{}{
			b.ID.String(),
			b.Title,
			b.Author,
			deref(b.Category),
			b.IsPublished,
			b.DownloadCount,
			deref(b.FileURL),
			deref(b.CoverURL),
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			b.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/models"
)

// RawVideoAPI is the slice of the backend client the raw pager needs.
type RawVideoAPI interface {
	List(ctx context.Context, page, limit int) (api.RawVideoPage, error)
	UpdateStatus(ctx context.Context, id int, status models.ReviewStatus) error
	Delete(ctx context.Context, id int) error
}

// RawBrowser pages through the moderation queue. Raw videos are created
// by an external ingestion path; the console only reviews and deletes.
type RawBrowser struct {
	svc      RawVideoAPI
	logger   *zap.Logger
	page     int
	pageSize int

	videos     []models.RawVideo
	pagination models.Pagination
}

// NewRawBrowser creates a pager. pageSize <= 0 uses DefaultPageSize.
func NewRawBrowser(svc RawVideoAPI, pageSize int, logger *zap.Logger) *RawBrowser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RawBrowser{svc: svc, logger: logger, page: 1, pageSize: pageSize}
}

// Refresh fetches the current page.
func (b *RawBrowser) Refresh(ctx context.Context) error {
	page, err := b.svc.List(ctx, b.page, b.pageSize)
	if err != nil {
		return err
	}
	b.videos = page.Videos
	b.pagination = page.Pagination
	return nil
}

// Videos returns the current page.
func (b *RawBrowser) Videos() []models.RawVideo { return b.videos }

// Page returns the current page number.
func (b *RawBrowser) Page() int { return b.page }

// TotalPages returns the server-declared page count.
func (b *RawBrowser) TotalPages() int { return b.pagination.TotalPages }

// CanNext reports whether a later page exists.
func (b *RawBrowser) CanNext() bool { return b.page < b.pagination.TotalPages }

// CanPrev reports whether an earlier page exists.
func (b *RawBrowser) CanPrev() bool { return b.page > 1 }

// Next advances one page, clamped to the last page.
func (b *RawBrowser) Next(ctx context.Context) error {
	if !b.CanNext() {
		return nil
	}
	b.page++
	return b.Refresh(ctx)
}

// Prev steps back one page, clamped to the first.
func (b *RawBrowser) Prev(ctx context.Context) error {
	if !b.CanPrev() {
		return nil
	}
	b.page--
	return b.Refresh(ctx)
}

// Review sets a raw video's moderation status and patches the row in
// place.
func (b *RawBrowser) Review(ctx context.Context, id int, status models.ReviewStatus) error {
	if err := b.svc.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	for i := range b.videos {
		if b.videos[i].ID == id {
			b.videos[i].Status = status
			break
		}
	}
	b.logger.Info("raw video reviewed", zap.Int("id", id), zap.String("status", string(status)))
	return nil
}

// Delete removes a raw video and refetches the page so it stays full.
func (b *RawBrowser) Delete(ctx context.Context, id int) error {
	if err := b.svc.Delete(ctx, id); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

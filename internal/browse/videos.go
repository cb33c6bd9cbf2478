package browse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/models"
)

// DefaultPageSize is the ready-video page length.
const DefaultPageSize = 10

// SortDirection cycles asc, desc, none per column.
type SortDirection int

// Sort directions in cycle order.
const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return ""
	}
}

// VideoListAPI is the slice of the backend client the browser needs.
type VideoListAPI interface {
	List(ctx context.Context, q api.VideoQuery) (api.VideoPage, error)
}

// SubCategoryOptionsAPI fetches subcategory filter options scoped to one
// category.
type SubCategoryOptionsAPI interface {
	ListSubCategories(ctx context.Context, categoryID int) ([]models.VideoSubCategory, error)
}

// VideoBrowser is the ready-video list view state. Pagination totals come
// from the server; the browser never derives them. Rows whose id does not
// parse as a positive integer are dropped before rendering and counted.
type VideoBrowser struct {
	svc       VideoListAPI
	subSvc    SubCategoryOptionsAPI
	debouncer *Debouncer
	logger    *zap.Logger

	mu         sync.Mutex
	page       int
	pageSize   int
	sortColumn string
	sortDir    SortDirection
	title      string
	athleteID  int
	categoryID int
	subCatID   int

	videos     []models.ReadyVideo
	skipped    int
	pagination models.Pagination
	subOptions []models.VideoSubCategory
}

// NewVideoBrowser creates a browser. debounce <= 0 uses DefaultDebounce;
// pageSize <= 0 uses DefaultPageSize.
func NewVideoBrowser(svc VideoListAPI, subSvc SubCategoryOptionsAPI, pageSize int, debounce time.Duration, logger *zap.Logger) *VideoBrowser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoBrowser{
		svc:       svc,
		subSvc:    subSvc,
		debouncer: NewDebouncer(debounce),
		logger:    logger,
		page:      1,
		pageSize:  pageSize,
	}
}

// Refresh fetches the current page under the current sort and filters.
func (b *VideoBrowser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	q := api.VideoQuery{
		Page:          b.page,
		Limit:         b.pageSize,
		SortBy:        b.sortColumn,
		SortDirection: b.sortDir.String(),
		Title:         b.title,
		AthleteID:     b.athleteID,
		CategoryID:    b.categoryID,
		SubCategoryID: b.subCatID,
	}
	b.mu.Unlock()

	page, err := b.svc.List(ctx, q)
	if err != nil {
		return err
	}

	kept := make([]models.ReadyVideo, 0, len(page.Videos))
	skipped := 0
	for _, v := range page.Videos {
		if _, ok := v.ParsedID(); !ok {
			skipped++
			continue
		}
		kept = append(kept, v)
	}
	if skipped > 0 {
		b.logger.Warn("dropped rows with invalid video ids", zap.Int("count", skipped))
	}

	b.mu.Lock()
	b.videos = kept
	b.skipped = skipped
	b.pagination = page.Pagination
	b.mu.Unlock()
	return nil
}

// Videos returns the current page's renderable rows.
func (b *VideoBrowser) Videos() []models.ReadyVideo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.videos
}

// Skipped returns how many rows the last refresh dropped.
func (b *VideoBrowser) Skipped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.skipped
}

// Page returns the current page number.
func (b *VideoBrowser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// TotalPages returns the server-declared page count.
func (b *VideoBrowser) TotalPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pagination.TotalPages
}

// TotalRecords returns the server-declared record count.
func (b *VideoBrowser) TotalRecords() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pagination.TotalRecords
}

// CanNext reports whether a later page exists.
func (b *VideoBrowser) CanNext() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page < b.pagination.TotalPages
}

// CanPrev reports whether an earlier page exists.
func (b *VideoBrowser) CanPrev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page > 1
}

// Next advances one page, clamped to the last page.
func (b *VideoBrowser) Next(ctx context.Context) error {
	if !b.CanNext() {
		return nil
	}
	b.mu.Lock()
	b.page++
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// Prev steps back one page, clamped to the first.
func (b *VideoBrowser) Prev(ctx context.Context) error {
	if !b.CanPrev() {
		return nil
	}
	b.mu.Lock()
	b.page--
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// Sort returns the active sort column and direction. An empty column
// means the server default, newest first.
func (b *VideoBrowser) Sort() (string, SortDirection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortColumn, b.sortDir
}

// CycleSort advances the sort state for a column: a fresh column starts
// ascending, a second click flips to descending, a third clears the sort
// back to the server default. Changing sort returns to page 1.
func (b *VideoBrowser) CycleSort(ctx context.Context, column string) error {
	b.mu.Lock()
	if b.sortColumn != column {
		b.sortColumn = column
		b.sortDir = SortAsc
	} else {
		switch b.sortDir {
		case SortAsc:
			b.sortDir = SortDesc
		case SortDesc:
			b.sortColumn = ""
			b.sortDir = SortNone
		default:
			b.sortDir = SortAsc
		}
	}
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetTitle records the search text and schedules a debounced refresh, so
// only the final value within the window reaches the backend. The refresh
// runs on the timer goroutine; onErr may be nil.
func (b *VideoBrowser) SetTitle(ctx context.Context, title string, onErr func(error)) {
	b.mu.Lock()
	b.title = title
	b.page = 1
	b.mu.Unlock()

	b.debouncer.Trigger(func() {
		if err := b.Refresh(ctx); err != nil {
			b.logger.Warn("title search failed", zap.Error(err))
			if onErr != nil {
				onErr(err)
			}
		}
	})
}

// SetAthleteFilter applies the athlete filter (0 clears) and refreshes.
func (b *VideoBrowser) SetAthleteFilter(ctx context.Context, id int) error {
	b.mu.Lock()
	b.athleteID = id
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetCategoryFilter applies the category filter (0 clears). The
// subcategory filter always resets and its options are refetched scoped
// to the new category.
func (b *VideoBrowser) SetCategoryFilter(ctx context.Context, id int) error {
	b.mu.Lock()
	b.categoryID = id
	b.subCatID = 0
	b.subOptions = nil
	b.page = 1
	b.mu.Unlock()

	if id != 0 && b.subSvc != nil {
		options, err := b.subSvc.ListSubCategories(ctx, id)
		if err != nil {
			return err
		}
		b.mu.Lock()
		b.subOptions = options
		b.mu.Unlock()
	}
	return b.Refresh(ctx)
}

// SetSubCategoryFilter applies the subcategory filter (0 clears) and
// refreshes.
func (b *VideoBrowser) SetSubCategoryFilter(ctx context.Context, id int) error {
	b.mu.Lock()
	b.subCatID = id
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SubCategoryOptions returns the filter options for the active category.
func (b *VideoBrowser) SubCategoryOptions() []models.VideoSubCategory {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subOptions
}

// Close cancels any pending debounced search.
func (b *VideoBrowser) Close() {
	b.debouncer.Stop()
}

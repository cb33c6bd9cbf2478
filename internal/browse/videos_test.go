package browse

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/models"
)

// mockVideoList serves 10-per-page slices of a fixed corpus and records
// every query.
type mockVideoList struct {
	mu      sync.Mutex
	videos  []models.ReadyVideo
	queries []api.VideoQuery
}

func (m *mockVideoList) List(_ context.Context, q api.VideoQuery) (api.VideoPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)

	total := len(m.videos)
	totalPages := (total + q.Limit - 1) / q.Limit
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	page := make([]models.ReadyVideo, end-start)
	copy(page, m.videos[start:end])
	return api.VideoPage{
		Videos: page,
		Pagination: models.Pagination{
			CurrentPage:  q.Page,
			TotalPages:   totalPages,
			TotalRecords: total,
		},
	}, nil
}

func (m *mockVideoList) queryLog() []api.VideoQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.VideoQuery, len(m.queries))
	copy(out, m.queries)
	return out
}

type mockSubOptions struct {
	subs  []models.VideoSubCategory
	calls []int
}

func (m *mockSubOptions) ListSubCategories(_ context.Context, categoryID int) ([]models.VideoSubCategory, error) {
	m.calls = append(m.calls, categoryID)
	var out []models.VideoSubCategory
	for _, s := range m.subs {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func corpus(n int) []models.ReadyVideo {
	videos := make([]models.ReadyVideo, 0, n)
	for i := 1; i <= n; i++ {
		videos = append(videos, models.ReadyVideo{
			VideoID: strconv.Itoa(i),
			Title:   "video " + strconv.Itoa(i),
		})
	}
	return videos
}

func TestVideoBrowserPagination(t *testing.T) {
	svc := &mockVideoList{videos: corpus(45)} // 5 pages of 10
	browser := NewVideoBrowser(svc, nil, 10, time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, browser.Refresh(ctx))
	assert.Equal(t, 1, browser.Page())
	assert.Equal(t, 5, browser.TotalPages())
	assert.Equal(t, 45, browser.TotalRecords())
	assert.False(t, browser.CanPrev())
	assert.True(t, browser.CanNext())

	// Prev on page 1 is a no-op, no request issued.
	before := len(svc.queryLog())
	require.NoError(t, browser.Prev(ctx))
	assert.Equal(t, before, len(svc.queryLog()))

	for i := 0; i < 10; i++ {
		require.NoError(t, browser.Next(ctx))
	}
	assert.Equal(t, 5, browser.Page(), "next clamps at the last page")
	assert.False(t, browser.CanNext())
	require.Len(t, browser.Videos(), 5)

	require.NoError(t, browser.Prev(ctx))
	assert.Equal(t, 4, browser.Page())
}

func TestVideoBrowserDropsInvalidIDs(t *testing.T) {
	svc := &mockVideoList{videos: []models.ReadyVideo{
		{VideoID: "1", Title: "ok"},
		{VideoID: "", Title: "missing id"},
		{VideoID: "abc", Title: "garbage id"},
		{VideoID: "-4", Title: "negative id"},
		{VideoID: "2", Title: "ok too"},
	}}
	browser := NewVideoBrowser(svc, nil, 10, time.Millisecond, nil)

	require.NoError(t, browser.Refresh(context.Background()))
	require.Len(t, browser.Videos(), 2)
	assert.Equal(t, 3, browser.Skipped())
}

func TestVideoBrowserSortCycle(t *testing.T) {
	svc := &mockVideoList{videos: corpus(3)}
	browser := NewVideoBrowser(svc, nil, 10, time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, browser.CycleSort(ctx, "title"))
	column, dir := browser.Sort()
	assert.Equal(t, "title", column)
	assert.Equal(t, SortAsc, dir)

	require.NoError(t, browser.CycleSort(ctx, "title"))
	_, dir = browser.Sort()
	assert.Equal(t, SortDesc, dir)

	// Third click clears the sort; the request falls back to the server
	// default, newest first.
	require.NoError(t, browser.CycleSort(ctx, "title"))
	column, dir = browser.Sort()
	assert.Equal(t, "", column)
	assert.Equal(t, SortNone, dir)

	queries := svc.queryLog()
	require.Len(t, queries, 3)
	assert.Equal(t, "title", queries[0].SortBy)
	assert.Equal(t, "asc", queries[0].SortDirection)
	assert.Equal(t, "desc", queries[1].SortDirection)
	assert.Equal(t, "", queries[2].SortBy)

	// Sorting a different column starts ascending.
	require.NoError(t, browser.CycleSort(ctx, "grade"))
	column, dir = browser.Sort()
	assert.Equal(t, "grade", column)
	assert.Equal(t, SortAsc, dir)
}

func TestVideoBrowserDebouncedTitleSearch(t *testing.T) {
	svc := &mockVideoList{videos: corpus(3)}
	browser := NewVideoBrowser(svc, nil, 10, 30*time.Millisecond, nil)
	defer browser.Close()
	ctx := context.Background()

	// Typed character by character, faster than the debounce window.
	for _, typed := range []string{"f", "fi", "fin", "fina", "final"} {
		browser.SetTitle(ctx, typed, nil)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(svc.queryLog()) == 1
	}, time.Second, 5*time.Millisecond)

	// Only the final value reached the backend.
	queries := svc.queryLog()
	require.Len(t, queries, 1)
	assert.Equal(t, "final", queries[0].Title)
	assert.Equal(t, 1, queries[0].Page)
}

func TestVideoBrowserCategoryFilterResetsSubCategory(t *testing.T) {
	svc := &mockVideoList{videos: corpus(3)}
	subs := &mockSubOptions{subs: []models.VideoSubCategory{
		{SubCategoryID: 10, CategoryID: 1, Name: "Warmup"},
		{SubCategoryID: 20, CategoryID: 2, Name: "Finals"},
	}}
	browser := NewVideoBrowser(svc, subs, 10, time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, browser.SetCategoryFilter(ctx, 1))
	require.NoError(t, browser.SetSubCategoryFilter(ctx, 10))
	require.NoError(t, browser.SetCategoryFilter(ctx, 2))

	queries := svc.queryLog()
	last := queries[len(queries)-1]
	assert.Equal(t, 2, last.CategoryID)
	assert.Equal(t, 0, last.SubCategoryID, "subcategory filter resets on category change")

	assert.Equal(t, []int{1, 2}, subs.calls)
	require.Len(t, browser.SubCategoryOptions(), 1)
	assert.Equal(t, "Finals", browser.SubCategoryOptions()[0].Name)
}

func TestVideoBrowserFilterReturnsToFirstPage(t *testing.T) {
	svc := &mockVideoList{videos: corpus(45)}
	browser := NewVideoBrowser(svc, nil, 10, time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, browser.Refresh(ctx))
	require.NoError(t, browser.Next(ctx))
	require.Equal(t, 2, browser.Page())

	require.NoError(t, browser.SetAthleteFilter(ctx, 7))
	assert.Equal(t, 1, browser.Page())

	queries := svc.queryLog()
	last := queries[len(queries)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, 7, last.AthleteID)
}

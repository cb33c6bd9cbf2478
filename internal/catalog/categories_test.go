package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yama-admin/video-console-go/internal/models"
)

// mockCategoryAPI is an in-memory CategoryAPI tracking scoped subcategory
// fetches.
type mockCategoryAPI struct {
	categories []models.VideoCategory
	subs       []models.VideoSubCategory
	nextCatID  int
	nextSubID  int

	subListCalls []int // category ids passed to ListSubCategories
}

func (m *mockCategoryAPI) List(_ context.Context) ([]models.VideoCategory, error) {
	out := make([]models.VideoCategory, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *mockCategoryAPI) Create(_ context.Context, name string) (models.VideoCategory, error) {
	m.nextCatID++
	c := models.VideoCategory{CategoryID: m.nextCatID, Name: name}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *mockCategoryAPI) Update(_ context.Context, id int, name string) (models.VideoCategory, error) {
	for i := range m.categories {
		if m.categories[i].CategoryID == id {
			m.categories[i].Name = name
			return m.categories[i], nil
		}
	}
	return models.VideoCategory{}, fmt.Errorf("category %d not found", id)
}

func (m *mockCategoryAPI) Delete(_ context.Context, id int) error {
	for i := range m.categories {
		if m.categories[i].CategoryID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %d not found", id)
}

func (m *mockCategoryAPI) ListSubCategories(_ context.Context, categoryID int) ([]models.VideoSubCategory, error) {
	m.subListCalls = append(m.subListCalls, categoryID)
	var out []models.VideoSubCategory
	for _, s := range m.subs {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockCategoryAPI) CreateSubCategory(_ context.Context, categoryID int, name string) (models.VideoSubCategory, error) {
	m.nextSubID++
	s := models.VideoSubCategory{SubCategoryID: m.nextSubID, CategoryID: categoryID, Name: name}
	m.subs = append(m.subs, s)
	return s, nil
}

func (m *mockCategoryAPI) UpdateSubCategory(_ context.Context, id, categoryID int, name string) (models.VideoSubCategory, error) {
	for i := range m.subs {
		if m.subs[i].SubCategoryID == id {
			m.subs[i].Name = name
			m.subs[i].CategoryID = categoryID
			return m.subs[i], nil
		}
	}
	return models.VideoSubCategory{}, fmt.Errorf("subcategory %d not found", id)
}

func (m *mockCategoryAPI) DeleteSubCategory(_ context.Context, id int) error {
	for i := range m.subs {
		if m.subs[i].SubCategoryID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("subcategory %d not found", id)
}

func seededCategoryAPI() *mockCategoryAPI {
	return &mockCategoryAPI{
		categories: []models.VideoCategory{
			{CategoryID: 1, Name: "Training"},
			{CategoryID: 2, Name: "Matches"},
		},
		subs: []models.VideoSubCategory{
			{SubCategoryID: 10, CategoryID: 1, Name: "Warmup"},
			{SubCategoryID: 11, CategoryID: 1, Name: "Drills"},
			{SubCategoryID: 20, CategoryID: 2, Name: "Finals"},
		},
		nextCatID: 2,
		nextSubID: 20,
	}
}

func TestCategoryManagerExpandScopesSubCategories(t *testing.T) {
	svc := seededCategoryAPI()
	manager := NewCategoryManager(svc, nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Expand(ctx, 1))
	assert.Equal(t, 1, manager.Expanded())
	require.Len(t, manager.SubCategories(), 2)

	// Re-expanding the same category reuses the cache.
	require.NoError(t, manager.Expand(ctx, 1))
	assert.Equal(t, []int{1}, svc.subListCalls)

	// Switching categories clears the cache and fetches the new scope.
	require.NoError(t, manager.Expand(ctx, 2))
	assert.Equal(t, []int{1, 2}, svc.subListCalls)
	require.Len(t, manager.SubCategories(), 1)
	assert.Equal(t, "Finals", manager.SubCategories()[0].Name)
}

func TestCategoryManagerSubCategoryRequiresExpansion(t *testing.T) {
	manager := NewCategoryManager(seededCategoryAPI(), nil, nil)
	ctx := context.Background()

	err := manager.AddSubCategory(ctx, "Sprints")
	assert.ErrorIs(t, err, ErrNoCategorySelected)

	err = manager.UpdateSubCategory(ctx, 10, "Sprints")
	assert.ErrorIs(t, err, ErrNoCategorySelected)

	err = manager.DeleteSubCategory(ctx, 10)
	assert.ErrorIs(t, err, ErrNoCategorySelected)
}

func TestCategoryManagerAddSubCategoryRefetchesScope(t *testing.T) {
	svc := seededCategoryAPI()
	manager := NewCategoryManager(svc, nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Expand(ctx, 1))
	require.NoError(t, manager.AddSubCategory(ctx, "Sprints"))

	require.Len(t, manager.SubCategories(), 3)
	for _, s := range manager.SubCategories() {
		assert.Equal(t, 1, s.CategoryID)
	}
}

func TestCategoryManagerDeleteExpandedCollapses(t *testing.T) {
	svc := seededCategoryAPI()
	manager := NewCategoryManager(svc, nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.List(ctx))
	require.NoError(t, manager.Expand(ctx, 1))
	require.NoError(t, manager.Delete(ctx, 1))

	assert.Equal(t, 0, manager.Expanded())
	assert.Empty(t, manager.SubCategories())
	require.Len(t, manager.Categories(), 1)
	assert.Equal(t, "Matches", manager.Categories()[0].Name)
}

func TestCategoryManagerSelectSubCategory(t *testing.T) {
	var selected int
	manager := NewCategoryManager(seededCategoryAPI(), func(id int) { selected = id }, nil)

	manager.SelectSubCategory(11)
	assert.Equal(t, 11, selected)
	assert.False(t, manager.Open())
}

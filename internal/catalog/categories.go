package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/models"
)

// ErrNoCategorySelected is returned for subcategory operations that
// require an expanded category first.
var ErrNoCategorySelected = errors.New("select a category first")

// CategoryAPI is the slice of the backend client the category manager
// needs.
type CategoryAPI interface {
	List(ctx context.Context) ([]models.VideoCategory, error)
	Create(ctx context.Context, name string) (models.VideoCategory, error)
	Update(ctx context.Context, id int, name string) (models.VideoCategory, error)
	Delete(ctx context.Context, id int) error
	ListSubCategories(ctx context.Context, categoryID int) ([]models.VideoSubCategory, error)
	CreateSubCategory(ctx context.Context, categoryID int, name string) (models.VideoSubCategory, error)
	UpdateSubCategory(ctx context.Context, id, categoryID int, name string) (models.VideoSubCategory, error)
	DeleteSubCategory(ctx context.Context, id int) error
}

// CategoryManager manages categories as a collapsible list with at most
// one category expanded at a time. The subcategory cache always belongs
// to the expanded category.
type CategoryManager struct {
	svc        CategoryAPI
	logger     *zap.Logger
	categories []models.VideoCategory
	subs       []models.VideoSubCategory
	expandedID int // 0 means none
	onSelect   func(subCategoryID int)
	open       bool
}

// NewCategoryManager creates a manager. onSelect receives the chosen
// subcategory id and may be nil.
func NewCategoryManager(svc CategoryAPI, onSelect func(subCategoryID int), logger *zap.Logger) *CategoryManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryManager{svc: svc, onSelect: onSelect, logger: logger, open: true}
}

// List fetches and caches all categories.
func (m *CategoryManager) List(ctx context.Context) error {
	categories, err := m.svc.List(ctx)
	if err != nil {
		return err
	}
	m.categories = categories
	return nil
}

// Categories returns the cached list.
func (m *CategoryManager) Categories() []models.VideoCategory {
	return m.categories
}

// Expanded returns the expanded category id, 0 when collapsed.
func (m *CategoryManager) Expanded() int { return m.expandedID }

// SubCategories returns the subcategory cache for the expanded category.
func (m *CategoryManager) SubCategories() []models.VideoSubCategory {
	return m.subs
}

// Expand opens a category. Expanding the already-expanded category reuses
// the cached subcategory list; expanding another one clears the cache and
// fetches the list scoped to the new id.
func (m *CategoryManager) Expand(ctx context.Context, categoryID int) error {
	if categoryID == m.expandedID {
		return nil
	}

	m.expandedID = categoryID
	m.subs = nil

	subs, err := m.svc.ListSubCategories(ctx, categoryID)
	if err != nil {
		return err
	}
	m.subs = subs
	return nil
}

// Collapse closes the expanded category.
func (m *CategoryManager) Collapse() {
	m.expandedID = 0
	m.subs = nil
}

// Create validates the name, posts, then re-runs List.
func (m *CategoryManager) Create(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := m.svc.Create(ctx, name); err != nil {
		return err
	}
	return m.List(ctx)
}

// Update renames a category and patches the cache.
func (m *CategoryManager) Update(ctx context.Context, id int, name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	updated, err := m.svc.Update(ctx, id, name)
	if err != nil {
		return err
	}
	for i := range m.categories {
		if m.categories[i].CategoryID == id {
			m.categories[i] = updated
			break
		}
	}
	return nil
}

// Delete removes a category remotely and from the cache; a deleted
// expanded category collapses.
func (m *CategoryManager) Delete(ctx context.Context, id int) error {
	if err := m.svc.Delete(ctx, id); err != nil {
		return err
	}
	out := m.categories[:0]
	for _, c := range m.categories {
		if c.CategoryID != id {
			out = append(out, c)
		}
	}
	m.categories = out
	if m.expandedID == id {
		m.Collapse()
	}
	return nil
}

// AddSubCategory creates a subcategory under the expanded category. The
// category-selected precondition is checked here, not by disabling the
// operation.
func (m *CategoryManager) AddSubCategory(ctx context.Context, name string) error {
	if m.expandedID == 0 {
		return ErrNoCategorySelected
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := m.svc.CreateSubCategory(ctx, m.expandedID, name); err != nil {
		return err
	}

	subs, err := m.svc.ListSubCategories(ctx, m.expandedID)
	if err != nil {
		return err
	}
	m.subs = subs
	return nil
}

// UpdateSubCategory renames a subcategory in the expanded scope and
// patches the cache.
func (m *CategoryManager) UpdateSubCategory(ctx context.Context, id int, name string) error {
	if m.expandedID == 0 {
		return ErrNoCategorySelected
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	updated, err := m.svc.UpdateSubCategory(ctx, id, m.expandedID, name)
	if err != nil {
		return err
	}
	for i := range m.subs {
		if m.subs[i].SubCategoryID == id {
			m.subs[i] = updated
			break
		}
	}
	return nil
}

// DeleteSubCategory removes a subcategory remotely and from the cache.
func (m *CategoryManager) DeleteSubCategory(ctx context.Context, id int) error {
	if m.expandedID == 0 {
		return ErrNoCategorySelected
	}
	if err := m.svc.DeleteSubCategory(ctx, id); err != nil {
		return err
	}
	out := m.subs[:0]
	for _, s := range m.subs {
		if s.SubCategoryID != id {
			out = append(out, s)
		}
	}
	m.subs = out
	return nil
}

// SelectSubCategory reports the chosen subcategory id and closes the
// manager.
func (m *CategoryManager) SelectSubCategory(id int) {
	if m.onSelect != nil {
		m.onSelect(id)
	}
	m.open = false
}

// Open reports whether the manager overlay is still open.
func (m *CategoryManager) Open() bool { return m.open }

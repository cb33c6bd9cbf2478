package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// CategoryService is the video category and subcategory endpoints.
type CategoryService struct {
	client *Client
}

// Categories returns the category service.
func (c *Client) Categories() *CategoryService {
	return &CategoryService{client: c}
}

type categoryListResponse struct {
	VideoCategories []models.VideoCategory `json:"videoCategories"`
}

type categoryResponse struct {
	VideoCategory models.VideoCategory `json:"videoCategory"`
}

type subCategoryListResponse struct {
	VideoSubCategories []models.VideoSubCategory `json:"videoSubCategories"`
}

type subCategoryResponse struct {
	VideoSubCategory models.VideoSubCategory `json:"videoSubCategory"`
}

// List fetches all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.VideoCategory, error) {
	var resp categoryListResponse
	if err := s.client.getJSON(ctx, "/api/v1/videoCategory/", &resp); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return resp.VideoCategories, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, name string) (models.VideoCategory, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}

	var resp categoryResponse
	if err := s.client.postJSON(ctx, "/api/v1/videoCategory/", body, &resp); err != nil {
		return models.VideoCategory{}, fmt.Errorf("create category: %w", err)
	}
	return resp.VideoCategory, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id int, name string) (models.VideoCategory, error) {
	body := struct {
		CategoryID int    `json:"categoryId"`
		Name       string `json:"name"`
	}{CategoryID: id, Name: name}

	var resp categoryResponse
	if err := s.client.putJSON(ctx, "/api/v1/videoCategory/", body, &resp); err != nil {
		return models.VideoCategory{}, fmt.Errorf("update category %d: %w", id, err)
	}
	return resp.VideoCategory, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/videoCategory/%d", id)); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

// ListSubCategories fetches the subcategories scoped to one category.
func (s *CategoryService) ListSubCategories(ctx context.Context, categoryID int) ([]models.VideoSubCategory, error) {
	var resp subCategoryListResponse
	path := fmt.Sprintf("/api/v1/videoSubCategory/%d", categoryID)
	if err := s.client.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list subcategories for category %d: %w", categoryID, err)
	}
	return resp.VideoSubCategories, nil
}

// CreateSubCategory adds a subcategory under the given category.
func (s *CategoryService) CreateSubCategory(ctx context.Context, categoryID int, name string) (models.VideoSubCategory, error) {
	body := struct {
		Name       string `json:"name"`
		CategoryID int    `json:"categoryId"`
	}{Name: name, CategoryID: categoryID}

	var resp subCategoryResponse
	if err := s.client.postJSON(ctx, "/api/v1/videoSubCategory/", body, &resp); err != nil {
		return models.VideoSubCategory{}, fmt.Errorf("create subcategory: %w", err)
	}
	return resp.VideoSubCategory, nil
}

// UpdateSubCategory renames a subcategory, keeping its parent category.
func (s *CategoryService) UpdateSubCategory(ctx context.Context, id, categoryID int, name string) (models.VideoSubCategory, error) {
	body := struct {
		SubCategoryID int    `json:"subCategoryId"`
		Name          string `json:"name"`
		CategoryID    int    `json:"categoryId"`
	}{SubCategoryID: id, Name: name, CategoryID: categoryID}

	var resp subCategoryResponse
	if err := s.client.putJSON(ctx, "/api/v1/videoSubCategory/", body, &resp); err != nil {
		return models.VideoSubCategory{}, fmt.Errorf("update subcategory %d: %w", id, err)
	}
	return resp.VideoSubCategory, nil
}

// DeleteSubCategory removes a subcategory.
func (s *CategoryService) DeleteSubCategory(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/videoSubCategory/%d", id)); err != nil {
		return fmt.Errorf("delete subcategory %d: %w", id, err)
	}
	return nil
}

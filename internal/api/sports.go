package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// SportService is the sport resource endpoints.
type SportService struct {
	client *Client
}

// Sports returns the sport service.
func (c *Client) Sports() *SportService {
	return &SportService{client: c}
}

type sportListResponse struct {
	Sports []models.Sport `json:"sports"`
}

type sportResponse struct {
	Sport models.Sport `json:"sport"`
}

// List fetches all sports.
func (s *SportService) List(ctx context.Context) ([]models.Sport, error) {
	var resp sportListResponse
	if err := s.client.getJSON(ctx, "/api/v1/sports", &resp); err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	return resp.Sports, nil
}

// Create adds a sport.
func (s *SportService) Create(ctx context.Context, name string) (models.Sport, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}

	var resp sportResponse
	if err := s.client.postJSON(ctx, "/api/v1/sports", body, &resp); err != nil {
		return models.Sport{}, fmt.Errorf("create sport: %w", err)
	}
	return resp.Sport, nil
}

// Update renames a sport.
func (s *SportService) Update(ctx context.Context, id int, name string) (models.Sport, error) {
	body := struct {
		SportID int    `json:"sportId"`
		Name    string `json:"name"`
	}{SportID: id, Name: name}

	var resp sportResponse
	if err := s.client.putJSON(ctx, "/api/v1/sports", body, &resp); err != nil {
		return models.Sport{}, fmt.Errorf("update sport %d: %w", id, err)
	}
	return resp.Sport, nil
}

// Delete removes a sport.
func (s *SportService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/sports/%d", id)); err != nil {
		return fmt.Errorf("delete sport %d: %w", id, err)
	}
	return nil
}

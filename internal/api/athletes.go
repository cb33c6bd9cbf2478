package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// AthleteService is the athlete resource endpoints.
type AthleteService struct {
	client *Client
}

// Athletes returns the athlete service.
func (c *Client) Athletes() *AthleteService {
	return &AthleteService{client: c}
}

// AthleteFields is the create/update body for an athlete.
type AthleteFields struct {
	Name    string `json:"name"`
	SportID int    `json:"sportId"`
	Profile string `json:"profile"`
	Gender  string `json:"gender"`
}

type athleteListResponse struct {
	Athletes []models.Athlete `json:"athletes"`
}

type athleteResponse struct {
	Athlete models.Athlete `json:"athlete"`
}

// List fetches all athletes.
func (s *AthleteService) List(ctx context.Context) ([]models.Athlete, error) {
	var resp athleteListResponse
	if err := s.client.getJSON(ctx, "/api/v1/athlete/", &resp); err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return resp.Athletes, nil
}

// Create adds an athlete.
func (s *AthleteService) Create(ctx context.Context, fields AthleteFields) (models.Athlete, error) {
	var resp athleteResponse
	if err := s.client.postJSON(ctx, "/api/v1/athlete/", fields, &resp); err != nil {
		return models.Athlete{}, fmt.Errorf("create athlete: %w", err)
	}
	return resp.Athlete, nil
}

// Update replaces an athlete's fields.
func (s *AthleteService) Update(ctx context.Context, id int, fields AthleteFields) (models.Athlete, error) {
	body := struct {
		AthleteID int `json:"athleteId"`
		AthleteFields
	}{AthleteID: id, AthleteFields: fields}

	var resp athleteResponse
	if err := s.client.putJSON(ctx, "/api/v1/athlete/", body, &resp); err != nil {
		return models.Athlete{}, fmt.Errorf("update athlete %d: %w", id, err)
	}
	return resp.Athlete, nil
}

// Delete removes an athlete.
func (s *AthleteService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/athlete/%d", id)); err != nil {
		return fmt.Errorf("delete athlete %d: %w", id, err)
	}
	return nil
}

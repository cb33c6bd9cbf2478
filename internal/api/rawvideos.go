package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// RawVideoService is the raw (user-submitted) video admin endpoints.
type RawVideoService struct {
	client *Client
}

// RawVideos returns the raw video service.
func (c *Client) RawVideos() *RawVideoService {
	return &RawVideoService{client: c}
}

// RawVideoPage is one page of raw videos with the server-declared
// pagination block.
type RawVideoPage struct {
	Videos     []models.RawVideo
	Pagination models.Pagination
}

type rawVideoListResponse struct {
	Message string `json:"message"`
	Details struct {
		Videos     []models.RawVideo `json:"videos"`
		Pagination models.Pagination `json:"pagination"`
	} `json:"details"`
}

// List fetches one page of raw videos.
func (s *RawVideoService) List(ctx context.Context, page, limit int) (RawVideoPage, error) {
	var resp rawVideoListResponse
	path := fmt.Sprintf("/api/v1/admin/rawVideos?page=%d&limit=%d", page, limit)
	if err := s.client.getJSON(ctx, path, &resp); err != nil {
		return RawVideoPage{}, fmt.Errorf("list raw videos: %w", err)
	}
	return RawVideoPage{
		Videos:     resp.Details.Videos,
		Pagination: resp.Details.Pagination,
	}, nil
}

// UpdateStatus sets a raw video's review status.
func (s *RawVideoService) UpdateStatus(ctx context.Context, id int, status models.ReviewStatus) error {
	body := struct {
		ID     int                 `json:"id"`
		Status models.ReviewStatus `json:"status"`
	}{ID: id, Status: status}

	if err := s.client.putJSON(ctx, "/api/v1/admin/rawVideo", body, nil); err != nil {
		return fmt.Errorf("update raw video %d status: %w", id, err)
	}
	return nil
}

// Delete removes a raw video.
func (s *RawVideoService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/admin/rawVideo/%d", id)); err != nil {
		return fmt.Errorf("delete raw video %d: %w", id, err)
	}
	return nil
}

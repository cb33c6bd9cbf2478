package api

import (
	"context"
	"fmt"

	"github.com/yama-admin/video-console-go/internal/models"
)

// VideoService is the curated (ready) video admin endpoints.
type VideoService struct {
	client *Client
}

// Videos returns the ready video service.
func (c *Client) Videos() *VideoService {
	return &VideoService{client: c}
}

// VideoQuery is the list request. Sorting and filtering are server
// responsibilities; the client only forwards them.
type VideoQuery struct {
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
	Title         string `json:"title,omitempty"`
	AthleteID     int    `json:"athleteId,omitempty"`
	CategoryID    int    `json:"categoryId,omitempty"`
	SubCategoryID int    `json:"subCategoryId,omitempty"`
}

// VideoPage is one page of ready videos with the server-declared
// pagination block.
type VideoPage struct {
	Videos     []models.ReadyVideo
	Pagination models.Pagination
}

type videoListResponse struct {
	Message string `json:"message"`
	Details struct {
		Videos     []models.ReadyVideo `json:"videos"`
		Pagination models.Pagination   `json:"pagination"`
	} `json:"details"`
}

// List fetches one page of ready videos.
func (s *VideoService) List(ctx context.Context, q VideoQuery) (VideoPage, error) {
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortDirection == "" {
		q.SortDirection = "desc"
	}

	var resp videoListResponse
	if err := s.client.postJSON(ctx, "/api/v1/admin/videos", q, &resp); err != nil {
		return VideoPage{}, fmt.Errorf("list videos: %w", err)
	}
	return VideoPage{
		Videos:     resp.Details.Videos,
		Pagination: resp.Details.Pagination,
	}, nil
}

// ThumbnailChange carries both the previous and the replacement thumbnail
// URL so the backend can release the old object.
type ThumbnailChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// VideoUpdate is the update payload for a ready video. ThumbNailURL is
// only set when the thumbnail actually changed.
type VideoUpdate struct {
	VideoID             string           `json:"videoId"`
	AthleteID           int              `json:"athleteId"`
	CategoryID          int              `json:"categoryId"`
	SubCategoryID       int              `json:"subCategoryId"`
	Title               string           `json:"title"`
	VideoSummary        string           `json:"videoSummary"`
	TargetGradeCategory string           `json:"targetGradeCategory"`
	TargetGender        string           `json:"targetGender"`
	Searchable          bool             `json:"searchable"`
	ThumbNailURL        *ThumbnailChange `json:"thumbNailUrl,omitempty"`
}

// Update applies a metadata (and optionally thumbnail) change.
func (s *VideoService) Update(ctx context.Context, update VideoUpdate) error {
	if err := s.client.putJSON(ctx, "/api/v1/admin/updateVideo", update, nil); err != nil {
		return fmt.Errorf("update video %s: %w", update.VideoID, err)
	}
	return nil
}

// Delete removes a ready video.
func (s *VideoService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/api/v1/admin/video/%d", id)); err != nil {
		return fmt.Errorf("delete video %d: %w", id, err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"
)

// UploadService is the presigned-URL negotiation and finalization
// endpoints. The part PUTs themselves go straight to object storage and
// live in the upload package.
type UploadService struct {
	client *Client
}

// Uploads returns the upload service.
func (c *Client) Uploads() *UploadService {
	return &UploadService{client: c}
}

// SignedURLRequest declares the assets about to be uploaded. A
// thumbnail-only replacement omits the video fields.
type SignedURLRequest struct {
	VideoFilename     string `json:"videoFilename,omitempty"`
	VideoType         string `json:"videoType,omitempty"`
	VideoPartCount    int    `json:"videoPartCount,omitempty"`
	ThumbNailFilename string `json:"thumbNailFilename"`
	ThumbNailType     string `json:"thumbNailType"`
}

// SignedPart is one presigned upload target, ordered by part number.
type SignedPart struct {
	PartNumber int    `json:"partNumber"`
	SignedURL  string `json:"signedUrl"`
}

// VideoUpload is the multipart target set for the video asset.
type VideoUpload struct {
	UploadID string       `json:"uploadId"`
	Key      string       `json:"key"`
	Parts    []SignedPart `json:"parts"`
}

// ImageUpload is the single presigned target for the thumbnail.
type ImageUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// SignedURLResponse is the negotiation result.
type SignedURLResponse struct {
	VideoUpload VideoUpload `json:"videoUpload"`
	ImageUpload ImageUpload `json:"imageUpload"`
}

// SignedURLs requests presigned upload targets.
func (s *UploadService) SignedURLs(ctx context.Context, req SignedURLRequest) (SignedURLResponse, error) {
	var resp SignedURLResponse
	if err := s.client.postJSON(ctx, "/api/v1/uploads/videoSignedUrls", req, &resp); err != nil {
		return SignedURLResponse{}, fmt.Errorf("get presigned URLs: %w", err)
	}
	return resp, nil
}

// CompletedPart is one uploaded part acknowledgement.
type CompletedPart struct {
	PartNumber int    `json:"PartNumber"`
	ETag       string `json:"ETag"`
}

// CompleteUploadRequest finalizes the multipart upload and creates the
// ready video record. The ids are integers coerced from the form strings.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CompleteUploadRequest struct {
	UploadID            string          `json:"uploadId"`
	FileName            string          `json:"fileName"`
	Parts               []CompletedPart `json:"parts"`
	ThumbnailKey        string          `json:"thumbnailKey"`
	AthleteID           int             `json:"athleteId"`
	CategoryID          int             `json:"categoryId"`
	SubCategoryID       int             `json:"subCategoryId"`
	Title               string          `json:"title"`
	VideoSummary        string          `json:"videoSummary"`
	TargetGradeCategory string          `json:"targetGradeCategory"`
	TargetGender        string          `json:"targetGender"`
	Searchable          bool            `json:"searchable"`
	PublicPreview       bool            `json:"publicPreview"`
	Plateform           string          `json:"plateform"`
	IsWelcoming         bool            `json:"isWelcoming"`
}

// Complete finalizes the upload server-side.
func (s *UploadService) Complete(ctx context.Context, req CompleteUploadRequest) error {
	if err := s.client.putJSON(ctx, "/api/v1/uploads/video", req, nil); err != nil {
		return fmt.Errorf("complete upload: %w", err)
	}
	return nil
}

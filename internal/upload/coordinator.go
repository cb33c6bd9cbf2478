package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
)

// Stage is the coordinator's position in the upload state machine. The
// path is strictly forward; there is no cancel, resume or retry, and an
// interrupted upload restarts from part 1.
type Stage int

// Upload stages in order.
const (
	StageIdle Stage = iota
	StageValidating
	StageChunking
	StageNegotiating
	StageUploadingParts
	StageUploadingThumbnail
	StageFinalizing
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageValidating:
		return "validating"
	case StageChunking:
		return "chunking"
	case StageNegotiating:
		return "negotiating targets"
	case StageUploadingParts:
		return "uploading parts"
	case StageUploadingThumbnail:
		return "uploading thumbnail"
	case StageFinalizing:
		return "finalizing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Negotiator is the backend side of the flow: presigned-URL negotiation
// and finalization.
type Negotiator interface {
	SignedURLs(ctx context.Context, req api.SignedURLRequest) (api.SignedURLResponse, error)
	Complete(ctx context.Context, req api.CompleteUploadRequest) error
}

// Metadata is the upload form. The id fields stay strings until
// finalization, where they are coerced to integers; Searchable and
// PublicPreview are the form's Yes/No answers.
type Metadata struct {
	AthleteID     string
	CategoryID    string
	SubCategoryID string
	Title         string
	Summary       string
	Grade         string
	Gender        string
	Searchable    string
	PublicPreview string
	Platform      string
	IsWelcoming   bool
}

// Input is one upload attempt.
type Input struct {
	VideoPath     string
	ThumbnailPath string
	Meta          Metadata
}

// Coordinator drives one upload at a time through the state machine.
type Coordinator struct {
	svc        Negotiator
	putter     ObjectPutter
	partSize   int64
	resetDelay time.Duration
	logger     *zap.Logger
	onProgress func(percent int)

	mu        sync.Mutex
	stage     Stage
	partIndex int
	partCount int
	uploading bool
}

// New creates a coordinator. partSize <= 0 falls back to DefaultPartSize.
func New(svc Negotiator, putter ObjectPutter, partSize int64, resetDelay time.Duration, logger *zap.Logger) *Coordinator {
	if partSize <= 0 {
		partSize = DefaultPartSize
	}
	if putter == nil {
		putter = NewHTTPPutter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		svc:        svc,
		putter:     putter,
		partSize:   partSize,
		resetDelay: resetDelay,
		logger:     logger,
	}
}

// OnProgress registers the combined-progress callback (0..100).
func (c *Coordinator) OnProgress(fn func(percent int)) {
	c.onProgress = fn
}

// Status returns the current stage and, while uploading parts, the
// 1-based part index and total part count.
func (c *Coordinator) Status() (Stage, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage, c.partIndex, c.partCount
}

// Uploading reports whether a run is in flight.
func (c *Coordinator) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// Reset returns a finished or failed coordinator to idle.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage = StageIdle
	c.partIndex = 0
	c.partCount = 0
}

func (c *Coordinator) setStage(s Stage) {
	c.mu.Lock()
	c.stage = s
	c.mu.Unlock()
}

func (c *Coordinator) setPart(i, n int) {
	c.mu.Lock()
	c.partIndex = i
	c.partCount = n
	c.mu.Unlock()
}

// Run executes one upload attempt. Every stage error is prefixed with the
// failing stage and returned as a single message; after any outcome the
// coordinator is no longer uploading. A validation failure issues no
// network call and leaves the machine idle.
func (c *Coordinator) Run(ctx context.Context, in Input) error {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return fmt.Errorf("an upload is already in progress")
	}
	c.uploading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.uploading = false
		c.mu.Unlock()
	}()

	err := c.run(ctx, in)
	if err != nil {
		c.setStage(StageFailed)
		c.logger.Warn("upload failed", zap.Error(err))
		return err
	}

	c.setStage(StageDone)
	c.logger.Info("upload complete", zap.String("video", in.VideoPath))
	if c.resetDelay > 0 {
		time.AfterFunc(c.resetDelay, c.Reset)
	}
	return nil
}

func (c *Coordinator) run(ctx context.Context, in Input) error {
	// Validation gate: fail fast before any network call.
	c.setStage(StageValidating)
	videoSize, thumbSize, thumbType, err := c.validate(in)
	if err != nil {
		c.setStage(StageIdle)
		return err
	}

	c.setStage(StageChunking)
	parts, err := PlanParts(videoSize, c.partSize)
	if err != nil {
		return err
	}

	c.setStage(StageNegotiating)
	videoType := VideoContentType(in.VideoPath)
	targets, err := c.svc.SignedURLs(ctx, api.SignedURLRequest{
		VideoFilename:     baseName(in.VideoPath),
		VideoType:         videoType,
		VideoPartCount:    len(parts),
		ThumbNailFilename: baseName(in.ThumbnailPath),
		ThumbNailType:     thumbType,
	})
	if err != nil {
		return fmt.Errorf("failed to get presigned URLs: %w", err)
	}
	if len(targets.VideoUpload.Parts) != len(parts) {
		return fmt.Errorf("failed to get presigned URLs: expected %d part targets, got %d",
			len(parts), len(targets.VideoUpload.Parts))
	}

	tracker := NewTracker(videoSize, thumbSize, c.onProgress)

	c.setStage(StageUploadingParts)
	etags, err := c.uploadParts(ctx, in.VideoPath, videoType, parts, targets.VideoUpload.Parts, tracker)
	if err != nil {
		return err
	}

	c.setStage(StageUploadingThumbnail)
	if err := c.uploadThumbnail(ctx, in.ThumbnailPath, thumbType, thumbSize, targets.ImageUpload.URL, tracker); err != nil {
		return fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	c.setStage(StageFinalizing)
	req, err := finalizeRequest(in.Meta, targets, etags)
	if err != nil {
		return fmt.Errorf("failed to complete upload: %w", err)
	}
	if err := c.svc.Complete(ctx, req); err != nil {
		return fmt.Errorf("failed to complete upload: %w", err)
	}

	return nil
}

func (c *Coordinator) validate(in Input) (videoSize, thumbSize int64, thumbType string, err error) {
	if in.VideoPath == "" {
		return 0, 0, "", fmt.Errorf("please select a video file")
	}
	if !IsAllowedVideo(in.VideoPath) {
		return 0, 0, "", fmt.Errorf("unsupported video type %q (accepted: .mp4, .mov, .avi, .m4v)", in.VideoPath)
	}
	if in.ThumbnailPath == "" {
		return 0, 0, "", fmt.Errorf("please select a thumbnail file")
	}
	thumbType, err = ImageContentType(in.ThumbnailPath)
	if err != nil {
		return 0, 0, "", err
	}

	m := in.Meta
	required := []struct {
		name, value string
	}{
		{"athlete", m.AthleteID},
		{"category", m.CategoryID},
		{"subcategory", m.SubCategoryID},
		{"title", m.Title},
		{"summary", m.Summary},
		{"grade", m.Grade},
		{"gender", m.Gender},
		{"searchable", m.Searchable},
		{"public preview", m.PublicPreview},
	}
	for _, f := range required {
		if f.value == "" {
			return 0, 0, "", fmt.Errorf("please fill out all required fields: %s is missing", f.name)
		}
	}

	videoInfo, err := os.Stat(in.VideoPath)
	if err != nil {
		return 0, 0, "", fmt.Errorf("video file: %w", err)
	}
	thumbInfo, err := os.Stat(in.ThumbnailPath)
	if err != nil {
		return 0, 0, "", fmt.Errorf("thumbnail file: %w", err)
	}

	return videoInfo.Size(), thumbInfo.Size(), thumbType, nil
}

// uploadParts PUTs the parts strictly in order, one at a time, and
// collects (partNumber, ETag) pairs in part order. Any failure aborts the
// whole upload naming the failing part.
func (c *Coordinator) uploadParts(ctx context.Context, path, contentType string, parts []Part, targets []api.SignedPart, tracker *Tracker) ([]api.CompletedPart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to upload part 1: %w", err)
	}
	defer f.Close()

	etags := make([]api.CompletedPart, 0, len(parts))
	var sent int64

	for i, part := range parts {
		target := targets[i]
		c.setPart(part.Number, len(parts))

		base := sent
		section := io.NewSectionReader(f, part.Offset, part.Size)
		etag, err := c.putter.Put(ctx, target.SignedURL, contentType, section, part.Size, func(partSent int64) {
			tracker.VideoTick(base + partSent)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload part %d: %w", target.PartNumber, err)
		}
		if etag == "" {
			return nil, fmt.Errorf("failed to upload part %d: response carried no ETag", target.PartNumber)
		}

		sent += part.Size
		tracker.VideoTick(sent)
		etags = append(etags, api.CompletedPart{PartNumber: target.PartNumber, ETag: etag})
	}

	return etags, nil
}

func (c *Coordinator) uploadThumbnail(ctx context.Context, path, contentType string, size int64, url string, tracker *Tracker) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = c.putter.Put(ctx, url, contentType, f, size, tracker.ThumbTick)
	if err != nil {
		return err
	}
	tracker.ThumbTick(size)
	return nil
}

func finalizeRequest(m Metadata, targets api.SignedURLResponse, etags []api.CompletedPart) (api.CompleteUploadRequest, error) {
	athleteID, err := strconv.Atoi(m.AthleteID)
	if err != nil {
		return api.CompleteUploadRequest{}, fmt.Errorf("invalid athlete id %q", m.AthleteID)
	}
	categoryID, err := strconv.Atoi(m.CategoryID)
	if err != nil {
		return api.CompleteUploadRequest{}, fmt.Errorf("invalid category id %q", m.CategoryID)
	}
	subCategoryID, err := strconv.Atoi(m.SubCategoryID)
	if err != nil {
		return api.CompleteUploadRequest{}, fmt.Errorf("invalid subcategory id %q", m.SubCategoryID)
	}

	platform := m.Platform
	if platform == "" {
		platform = "all"
	}

	return api.CompleteUploadRequest{
		UploadID:            targets.VideoUpload.UploadID,
		FileName:            targets.VideoUpload.Key,
		Parts:               etags,
		ThumbnailKey:        targets.ImageUpload.Key,
		AthleteID:           athleteID,
		CategoryID:          categoryID,
		SubCategoryID:       subCategoryID,
		Title:               m.Title,
		VideoSummary:        m.Summary,
		TargetGradeCategory: m.Grade,
		TargetGender:        m.Gender,
		Searchable:          m.Searchable == "Yes",
		PublicPreview:       m.PublicPreview == "Yes",
		Plateform:           platform,
		IsWelcoming:         m.IsWelcoming,
	}, nil
}

// baseName strips the directory and replaces spaces so the name is safe
// inside an object key.
func baseName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), " ", "_")
}

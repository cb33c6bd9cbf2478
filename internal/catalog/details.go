package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/models"
	"github.com/yama-admin/video-console-go/internal/upload"
)

// ErrVideoNotFound is returned when a detail session is opened on a video
// the list view no longer holds.
var ErrVideoNotFound = errors.New("video not found")

// DefaultMaxThumbnailSize caps replacement thumbnails at 5 MiB.
const DefaultMaxThumbnailSize int64 = 5 * 1024 * 1024

// VideoEditorAPI is the slice of the backend client a detail session
// needs.
type VideoEditorAPI interface {
	Update(ctx context.Context, update api.VideoUpdate) error
	Delete(ctx context.Context, id int) error
}

// ThumbnailSigner negotiates a presigned target for a thumbnail-only
// replacement.
type ThumbnailSigner interface {
	SignedURLs(ctx context.Context, req api.SignedURLRequest) (api.SignedURLResponse, error)
}

// SubCategoryLister fetches the subcategory options scoped to one
// category.
type SubCategoryLister interface {
	ListSubCategories(ctx context.Context, categoryID int) ([]models.VideoSubCategory, error)
}

// EditForm is the mutable metadata of a ready video under edit.
type EditForm struct {
	AthleteID     int
	CategoryID    int
	SubCategoryID int
	Title         string
	Summary       string
	Grade         string
	Gender        string
	Searchable    bool
}

// EditSession edits one ready video: metadata fields, an optional
// thumbnail replacement and a confirm-gated delete.
type EditSession struct {
	videos       VideoEditorAPI
	signer       ThumbnailSigner
	subs         SubCategoryLister
	putter       upload.ObjectPutter
	maxThumbSize int64
	logger       *zap.Logger

	video      models.ReadyVideo
	form       EditForm
	subOptions []models.VideoSubCategory

	thumbPath string
	thumbType string
	thumbSize int64

	pendingDelete bool
}

// EditConfig wires an EditSession.
type EditConfig struct {
	Videos       VideoEditorAPI
	Signer       ThumbnailSigner
	SubLister    SubCategoryLister
	Putter       upload.ObjectPutter
	MaxThumbSize int64
	Logger       *zap.Logger
}

// NewEditSession opens a session on the given video. The athlete and
// category lists backfill reference ids the payload carries only as
// display names.
func NewEditSession(cfg EditConfig, video models.ReadyVideo, athletes []models.Athlete, categories []models.VideoCategory) (*EditSession, error) {
	if _, ok := video.ParsedID(); !ok {
		return nil, ErrVideoNotFound
	}
	if cfg.MaxThumbSize <= 0 {
		cfg.MaxThumbSize = DefaultMaxThumbnailSize
	}
	if cfg.Putter == nil {
		cfg.Putter = upload.NewHTTPPutter()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	form := EditForm{
		AthleteID:     video.AthleteID,
		CategoryID:    video.CategoryID,
		SubCategoryID: video.SubCategoryID,
		Title:         video.Title,
		Summary:       video.Summary,
		Grade:         video.Grade,
		Gender:        video.Gender,
		Searchable:    video.Searchable,
	}
	if form.AthleteID == 0 {
		for _, a := range athletes {
			if a.Name == video.Athlete {
				form.AthleteID = a.AthleteID
				break
			}
		}
	}
	if form.CategoryID == 0 {
		for _, c := range categories {
			if c.Name == video.Category {
				form.CategoryID = c.CategoryID
				break
			}
		}
	}

	return &EditSession{
		videos:       cfg.Videos,
		signer:       cfg.Signer,
		subs:         cfg.SubLister,
		putter:       cfg.Putter,
		maxThumbSize: cfg.MaxThumbSize,
		logger:       cfg.Logger,
		video:        video,
		form:         form,
	}, nil
}

// Video returns the video the session was opened on.
func (s *EditSession) Video() models.ReadyVideo { return s.video }

// Form returns the current form state.
func (s *EditSession) Form() EditForm { return s.form }

// SubCategoryOptions returns the options for the current category.
func (s *EditSession) SubCategoryOptions() []models.VideoSubCategory {
	return s.subOptions
}

// LoadSubCategories fetches the options scoped to the form's category.
// The subcategory id the video carried stays selected when it still
// belongs to that category; a name-only payload is backfilled here.
func (s *EditSession) LoadSubCategories(ctx context.Context) error {
	if s.form.CategoryID == 0 {
		s.subOptions = nil
		return nil
	}
	options, err := s.subs.ListSubCategories(ctx, s.form.CategoryID)
	if err != nil {
		return err
	}
	s.subOptions = options

	if s.form.SubCategoryID == 0 {
		for _, o := range options {
			if o.Name == s.video.Subcategory {
				s.form.SubCategoryID = o.SubCategoryID
				break
			}
		}
	}
	return nil
}

// SetAthlete updates the athlete reference.
func (s *EditSession) SetAthlete(id int) { s.form.AthleteID = id }

// SetCategory switches category: the subcategory selection resets and the
// options are refetched under the new category.
func (s *EditSession) SetCategory(ctx context.Context, id int) error {
	s.form.CategoryID = id
	s.form.SubCategoryID = 0
	s.subOptions = nil
	if id == 0 {
		return nil
	}
	options, err := s.subs.ListSubCategories(ctx, id)
	if err != nil {
		return err
	}
	s.subOptions = options
	return nil
}

// SetSubCategory updates the subcategory reference.
func (s *EditSession) SetSubCategory(id int) { s.form.SubCategoryID = id }

// SetTitle updates the title.
func (s *EditSession) SetTitle(v string) { s.form.Title = v }

// SetSummary updates the summary.
func (s *EditSession) SetSummary(v string) { s.form.Summary = v }

// SetGrade updates the target grade.
func (s *EditSession) SetGrade(v string) { s.form.Grade = v }

// SetGender updates the target gender.
func (s *EditSession) SetGender(v string) { s.form.Gender = v }

// SetSearchable updates the searchable flag.
func (s *EditSession) SetSearchable(v bool) { s.form.Searchable = v }

// AttachThumbnail stages a replacement thumbnail. The file must carry an
// accepted image extension and stay under the size cap; nothing is
// uploaded until Save.
func (s *EditSession) AttachThumbnail(path string) error {
	contentType, err := upload.ImageContentType(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("thumbnail file: %w", err)
	}
	if info.Size() > s.maxThumbSize {
		return fmt.Errorf("thumbnail exceeds %d MB limit", s.maxThumbSize/(1024*1024))
	}
	s.thumbPath = path
	s.thumbType = contentType
	s.thumbSize = info.Size()
	return nil
}

// DetachThumbnail drops a staged replacement.
func (s *EditSession) DetachThumbnail() {
	s.thumbPath = ""
	s.thumbType = ""
	s.thumbSize = 0
}

// HasThumbnail reports whether a replacement is staged.
func (s *EditSession) HasThumbnail() bool { return s.thumbPath != "" }

// Save validates the form, uploads a staged thumbnail if any, and sends
// the update. The thumbnail change block is only attached when the
// thumbnail actually changed.
func (s *EditSession) Save(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}

	update := api.VideoUpdate{
		VideoID:             s.video.VideoID,
		AthleteID:           s.form.AthleteID,
		CategoryID:          s.form.CategoryID,
		SubCategoryID:       s.form.SubCategoryID,
		Title:               s.form.Title,
		VideoSummary:        s.form.Summary,
		TargetGradeCategory: s.form.Grade,
		TargetGender:        s.form.Gender,
		Searchable:          s.form.Searchable,
	}

	if s.thumbPath != "" {
		newURL, err := s.uploadThumbnail(ctx)
		if err != nil {
			return fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		update.ThumbNailURL = &api.ThumbnailChange{
			Old: strings.ReplaceAll(s.video.Thumbnail, " ", "%20"),
			New: newURL,
		}
	}

	if err := s.videos.Update(ctx, update); err != nil {
		return err
	}

	s.logger.Info("video updated", zap.String("videoId", s.video.VideoID))
	s.DetachThumbnail()
	return nil
}

func (s *EditSession) validate() error {
	required := []struct {
		name  string
		empty bool
	}{
		{"athlete", s.form.AthleteID == 0},
		{"category", s.form.CategoryID == 0},
		{"subcategory", s.form.SubCategoryID == 0},
		{"title", s.form.Title == ""},
		{"summary", s.form.Summary == ""},
		{"grade", s.form.Grade == ""},
		{"gender", s.form.Gender == ""},
	}
	for _, f := range required {
		if f.empty {
			return fmt.Errorf("please fill out all required fields: %s is missing", f.name)
		}
	}
	return nil
}

// uploadThumbnail negotiates a single presigned target, PUTs the staged
// file and returns the object's public URL, the signed URL with its query
// string stripped.
func (s *EditSession) uploadThumbnail(ctx context.Context) (string, error) {
	name := strings.ReplaceAll(filepath.Base(s.thumbPath), " ", "_")
	targets, err := s.signer.SignedURLs(ctx, api.SignedURLRequest{
		ThumbNailFilename: name,
		ThumbNailType:     s.thumbType,
	})
	if err != nil {
		return "", err
	}

	f, err := os.Open(s.thumbPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := s.putter.Put(ctx, targets.ImageUpload.URL, s.thumbType, f, s.thumbSize, nil); err != nil {
		return "", err
	}

	publicURL, _, _ := strings.Cut(targets.ImageUpload.URL, "?")
	return publicURL, nil
}

// RequestDelete arms the delete confirmation.
func (s *EditSession) RequestDelete() { s.pendingDelete = true }

// CancelDelete disarms it.
func (s *EditSession) CancelDelete() { s.pendingDelete = false }

// DeletePending reports whether a delete awaits confirmation.
func (s *EditSession) DeletePending() bool { return s.pendingDelete }

// ConfirmDelete performs the armed delete.
func (s *EditSession) ConfirmDelete(ctx context.Context) error {
	if !s.pendingDelete {
		return fmt.Errorf("no delete pending")
	}
	id, _ := s.video.ParsedID()
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	s.pendingDelete = false
	s.logger.Info("video deleted", zap.Int("videoId", id))
	return nil
}

// Package catalog holds the entity managers: self-contained widgets that
// each own one resource (list, add, edit, delete) and a cached copy of
// its list. Managers never retry and never touch each other's state;
// selection is reported through a caller-supplied callback.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/models"
)

// AthleteAPI is the slice of the backend client the athlete manager needs.
type AthleteAPI interface {
	List(ctx context.Context) ([]models.Athlete, error)
	Create(ctx context.Context, fields api.AthleteFields) (models.Athlete, error)
	Update(ctx context.Context, id int, fields api.AthleteFields) (models.Athlete, error)
	Delete(ctx context.Context, id int) error
}

// SportAPI is the slice of the backend client the sport manager needs.
type SportAPI interface {
	List(ctx context.Context) ([]models.Sport, error)
	Create(ctx context.Context, name string) (models.Sport, error)
	Update(ctx context.Context, id int, name string) (models.Sport, error)
	Delete(ctx context.Context, id int) error
}

// AthleteManager manages the athlete list.
type AthleteManager struct {
	svc      AthleteAPI
	logger   *zap.Logger
	athletes []models.Athlete
	onSelect func(id int)
	open     bool
}

// NewAthleteManager creates a manager. onSelect may be nil.
func NewAthleteManager(svc AthleteAPI, onSelect func(id int), logger *zap.Logger) *AthleteManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AthleteManager{svc: svc, onSelect: onSelect, logger: logger, open: true}
}

// List fetches and caches all athletes.
func (m *AthleteManager) List(ctx context.Context) error {
	athletes, err := m.svc.List(ctx)
	if err != nil {
		return err
	}
	m.athletes = athletes
	return nil
}

// Athletes returns the cached list.
func (m *AthleteManager) Athletes() []models.Athlete {
	return m.athletes
}

// Create validates required fields, posts, then re-runs List (no
// optimistic patch on create).
func (m *AthleteManager) Create(ctx context.Context, fields api.AthleteFields) error {
	if fields.Name == "" || fields.Gender == "" || fields.SportID <= 0 {
		return fmt.Errorf("name, gender and sport are required")
	}
	if _, err := m.svc.Create(ctx, fields); err != nil {
		return err
	}
	return m.List(ctx)
}

// Update puts the change and patches the cached record in place.
func (m *AthleteManager) Update(ctx context.Context, id int, fields api.AthleteFields) error {
	if fields.Name == "" {
		return fmt.Errorf("name is required")
	}
	updated, err := m.svc.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	for i := range m.athletes {
		if m.athletes[i].AthleteID == id {
			m.athletes[i] = updated
			break
		}
	}
	return nil
}

// Delete removes the record remotely, then from the cache.
func (m *AthleteManager) Delete(ctx context.Context, id int) error {
	if err := m.svc.Delete(ctx, id); err != nil {
		return err
	}
	m.athletes = removeAthlete(m.athletes, id)
	return nil
}

// Select reports the chosen id to the caller and closes the manager.
func (m *AthleteManager) Select(id int) {
	if m.onSelect != nil {
		m.onSelect(id)
	}
	m.open = false
}

// Open reports whether the manager overlay is still open.
func (m *AthleteManager) Open() bool { return m.open }

func removeAthlete(list []models.Athlete, id int) []models.Athlete {
	out := list[:0]
	for _, a := range list {
		if a.AthleteID != id {
			out = append(out, a)
		}
	}
	return out
}

// SportManager manages the sport list.
type SportManager struct {
	svc      SportAPI
	logger   *zap.Logger
	sports   []models.Sport
	onSelect func(id int)
	open     bool
}

// NewSportManager creates a manager. onSelect may be nil.
func NewSportManager(svc SportAPI, onSelect func(id int), logger *zap.Logger) *SportManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SportManager{svc: svc, onSelect: onSelect, logger: logger, open: true}
}

// List fetches and caches all sports.
func (m *SportManager) List(ctx context.Context) error {
	sports, err := m.svc.List(ctx)
	if err != nil {
		return err
	}
	m.sports = sports
	return nil
}

// Sports returns the cached list.
func (m *SportManager) Sports() []models.Sport {
	return m.sports
}

// Create validates the name, posts, then re-runs List.
func (m *SportManager) Create(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := m.svc.Create(ctx, name); err != nil {
		return err
	}
	return m.List(ctx)
}

// Update renames a sport and patches the cache.
func (m *SportManager) Update(ctx context.Context, id int, name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	updated, err := m.svc.Update(ctx, id, name)
	if err != nil {
		return err
	}
	for i := range m.sports {
		if m.sports[i].SportID == id {
			m.sports[i] = updated
			break
		}
	}
	return nil
}

// Delete removes the sport remotely, then from the cache.
func (m *SportManager) Delete(ctx context.Context, id int) error {
	if err := m.svc.Delete(ctx, id); err != nil {
		return err
	}
	out := m.sports[:0]
	for _, s := range m.sports {
		if s.SportID != id {
			out = append(out, s)
		}
	}
	m.sports = out
	return nil
}

// Select reports the chosen id and closes the manager.
func (m *SportManager) Select(id int) {
	if m.onSelect != nil {
		m.onSelect(id)
	}
	m.open = false
}

// Open reports whether the manager overlay is still open.
func (m *SportManager) Open() bool { return m.open }

package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
)

var ErrInvalidInterval = errors.New("check interval must be one of 1, 6, 12 or 24 hours")

// AllowedIntervals are the background check periods offered to the user, in hours.
var AllowedIntervals = []int{1, 6, 12, 24}

type Settings struct {
	CheckIntervalHours   int   `yaml:"check_interval_hours"`
	NotificationsEnabled bool  `yaml:"notifications_enabled"`
	FirstRun             bool  `yaml:"first_run"`
	LastCheckTimestamp   int64 `yaml:"last_check_timestamp"` // unix millis, 0 = never
}

func Defaults() Settings {
	return Settings{
		CheckIntervalHours:   1,
		NotificationsEnabled: false,
		FirstRun:             true,
		LastCheckTimestamp:   0,
	}
}

type Store interface {
	Load(ctx context.Context) (Settings, error)
	SetCheckInterval(ctx context.Context, hours int) error
	SetNotificationsEnabled(ctx context.Context, enabled bool) error
	SetFirstRunCompleted(ctx context.Context) error
	SetLastCheckTimestamp(ctx context.Context, ms int64) error
}

func ValidateInterval(hours int) error {
	if !utils.Includes(AllowedIntervals, hours) {
		return fmt.Errorf("%d: %w", hours, ErrInvalidInterval)
	}
	return nil
}

// NextInterval cycles through AllowedIntervals, wrapping around.
func NextInterval(hours int) int {
	for i, h := range AllowedIntervals {
		if h == hours {
			return AllowedIntervals[(i+1)%len(AllowedIntervals)]
		}
	}
	return AllowedIntervals[0]
}

// FileStore keeps the settings in a single YAML file. A missing file reads as
// Defaults(); each setter is a locked read-modify-write replaced atomically.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *FileStore) loadLocked(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}

	st := Defaults()
	ok, err := utils.FileExists(s.path)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		logger.Debug("settings file %s not found, using defaults", s.path)
		return st, nil
	}

	if err := utils.FileReader(s.path, utils.FileTypeYAML, &st); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if ValidateInterval(st.CheckIntervalHours) != nil {
		logger.Warn("ignoring invalid check interval %d in %s", st.CheckIntervalHours, s.path)
		st.CheckIntervalHours = Defaults().CheckIntervalHours
	}
	return st, nil
}

func (s *FileStore) update(ctx context.Context, mutate func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	mutate(&st)

	if err := utils.WriteFileAtomic(s.path, st, utils.FileTypeYAML, 0o600); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *FileStore) SetCheckInterval(ctx context.Context, hours int) error {
	if err := ValidateInterval(hours); err != nil {
		return err
	}
	return s.update(ctx, func(st *Settings) { st.CheckIntervalHours = hours })
}

func (s *FileStore) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return s.update(ctx, func(st *Settings) { st.NotificationsEnabled = enabled })
}

func (s *FileStore) SetFirstRunCompleted(ctx context.Context) error {
	return s.update(ctx, func(st *Settings) { st.FirstRun = false })
}

func (s *FileStore) SetLastCheckTimestamp(ctx context.Context, ms int64) error {
	return s.update(ctx, func(st *Settings) { st.LastCheckTimestamp = ms })
}

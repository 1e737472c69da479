// Package settings persists small user preferences across runs: the
// last-opened database file and a bounded recent-files list.
package settings

import (
	"errors"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MaxRecentFiles bounds the recent-files list.
const MaxRecentFiles = 5

const (
	keyLastDatabase = "last_database"
	keyRecentFiles  = "recent_files"
)

type Store struct {
	mu       sync.Mutex
	v        *viper.Viper
	path     string
	log      *zap.Logger
	watching bool
}

// NewStore opens (or lazily creates) the settings file at path. External
// edits are picked up through a config watch once the file exists.
func NewStore(path string, log *zap.Logger) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")

	s := &Store{
		v:    v,
		path: path,
		log:  log.Named("settings.store"),
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
		// missing file: start empty, create on first write
	} else {
		s.startWatchLocked()
	}

	return s, nil
}

// LastDatabase returns the most recently opened database path, or "".
func (s *Store) LastDatabase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keyLastDatabase)
}

// RecentFiles returns the recent database paths, most recent first.
func (s *Store) RecentFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetStringSlice(keyRecentFiles)
}

// Touch records path as the last-opened database and moves it to the
// front of the recent-files list, deduplicated and capped.
func (s *Store) Touch(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]string, 0, MaxRecentFiles)
	recent = append(recent, path)
	for _, p := range s.v.GetStringSlice(keyRecentFiles) {
		if p == path {
			continue
		}
		recent = append(recent, p)
		if len(recent) == MaxRecentFiles {
			break
		}
	}

	s.v.Set(keyLastDatabase, path)
	s.v.Set(keyRecentFiles, recent)
	return s.persistLocked()
}

// Remove drops path from the recent-files list, e.g. after a failed open.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recent []string
	for _, p := range s.v.GetStringSlice(keyRecentFiles) {
		if p != path {
			recent = append(recent, p)
		}
	}

	s.v.Set(keyRecentFiles, recent)
	if s.v.GetString(keyLastDatabase) == path {
		s.v.Set(keyLastDatabase, "")
	}
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return err
	}
	if !s.watching {
		s.startWatchLocked()
	}
	return nil
}

func (s *Store) startWatchLocked() {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		s.log.Info("settings reloaded", zap.String("file", e.Name))
	})
	s.v.WatchConfig()
	s.watching = true
}

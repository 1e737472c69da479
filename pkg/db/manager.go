// Package db manages the local SQLite database file and hands out
// transactional handles bound to it.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultDatabaseFile is used when no path was ever configured.
const DefaultDatabaseFile = "facturo.db"

var ErrNotInitialized = errors.New("database not initialized")

// Manager owns the current database path and the open connection.
// Every service goes through DB() so that SetDatabasePath can repoint
// the whole application at another file at runtime.
type Manager struct {
	mu   sync.Mutex
	log  *zap.Logger
	path string
	conn *gorm.DB
}

func NewManager(path string, log *zap.Logger) *Manager {
	if strings.TrimSpace(path) == "" {
		path = DefaultDatabaseFile
	}
	return &Manager{
		log:  log.Named("db.manager"),
		path: path,
	}
}

// Path returns the currently configured database file path.
func (m *Manager) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// SetDatabasePath closes the current connection, if any, and repoints the
// manager at another file. Data is not migrated between files. The new
// connection is opened lazily on the next DB or Init call.
func (m *Manager) SetDatabasePath(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.closeLocked(); err != nil {
		return err
	}
	m.path = strings.TrimSpace(path)
	return nil
}

// Init opens the database if needed and applies the embedded schema
// migrations. Safe to call repeatedly; existing schema is left untouched.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, err := m.openLocked()
	if err != nil {
		return err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("obtain sql handle: %w", err)
	}
	if err := RunMigrations(sqlDB); err != nil {
		return err
	}

	m.log.Info("database initialized", zap.String("path", m.path))
	return nil
}

// DB returns the handle for the current path, opening it on first use.
func (m *Manager) DB() (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openLocked()
}

// Close releases the current connection. The configured path survives.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeLocked()
}

func (m *Manager) openLocked() (*gorm.DB, error) {
	if m.conn != nil {
		return m.conn, nil
	}
	if m.path == "" {
		return nil, ErrNotInitialized
	}
	conn, err := Open(m.path)
	if err != nil {
		return nil, err
	}
	m.conn = conn
	return conn, nil
}

func (m *Manager) closeLocked() error {
	if m.conn == nil {
		return nil
	}
	sqlDB, err := m.conn.DB()
	if err != nil {
		return err
	}
	m.conn = nil
	return sqlDB.Close()
}

// Open builds a SQLite connection for the given file path with foreign
// keys enforced.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	return conn, nil
}

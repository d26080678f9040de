package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/ubytes/appplatform/internal/logging"
)

// LazyDB opens the permission database on first use, so a session in which
// no content asks for a permission never pays for the WASM compile and
// migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
// A failed open is remembered and returned on every later call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}

		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		err := l.db.Close()
		l.db = nil
		l.err = fmt.Errorf("database closed")
		return err
	}
	return nil
}

// IsInitialized returns true if the database has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

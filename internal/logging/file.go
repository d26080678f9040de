package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const logFileName = "appplatform.log"

// FileConfig enables a rotated JSON log file next to the stderr output.
type FileConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

// NewWithFile returns a logger that writes cfg's stderr output and a JSON
// copy to fileCfg.Dir. The returned func closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	rotator, err := NewRotator(fileCfg.Dir, fileCfg.MaxSizeMB, fileCfg.MaxBackups)
	if err != nil {
		return New(cfg), func() {}, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	var console io.Writer = out
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(console, rotator)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return logger, func() { _ = rotator.Close() }, nil
}

// Rotator is an io.Writer over appplatform.log that moves the file aside
// once it would exceed maxSize and keeps at most maxBackups old files.
type Rotator struct {
	mu         sync.Mutex
	dir        string
	maxSize    int64
	maxBackups int
	file       *os.File
	size       int64
	now        func() time.Time
}

// NewRotator opens dir/appplatform.log for appending, creating dir.
func NewRotator(dir string, maxSizeMB, maxBackups int) (*Rotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	r := &Rotator{
		dir:        dir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
		now:        time.Now,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rotator) path() string {
	return filepath.Join(r.dir, logFileName)
}

func (r *Rotator) open() error {
	file, err := os.OpenFile(r.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	r.file, r.size = file, info.Size()
	return nil
}

func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *Rotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	r.file = nil

	backup := fmt.Sprintf("%s.%s", r.path(), r.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(r.path(), backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	r.prune()
	return r.open()
}

// prune removes the oldest backups beyond maxBackups. Backup names sort by
// their timestamp suffix.
func (r *Rotator) prune() {
	if r.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return
	}
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), logFileName+".") {
			backups = append(backups, e.Name())
		}
	}
	slices.Sort(backups)
	for len(backups) > r.maxBackups {
		_ = os.Remove(filepath.Join(r.dir, backups[0]))
		backups = backups[1:]
	}
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Package cache is a small disk-backed store for downloaded bytes, keyed
// by URL. It keeps weather icons and similar fetched assets across process
// runs so one-shot renders do not re-download them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store caches byte blobs as files under one directory. Entries expire by
// file modification time. Safe for concurrent use: writes are atomic via
// temp-file-then-rename, and readers only ever see complete files.
type Store struct {
	dir string
	ttl time.Duration
}

// NewStore opens (creating if needed) a cache directory. ttl <= 0 means
// entries never expire.
func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	return &Store{dir: dir, ttl: ttl}, nil
}

// DefaultDir returns the per-user cache directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tile-pulse")
	}
	return filepath.Join(base, "tile-pulse")
}

// Get returns the cached bytes for key, or false on a miss or an expired
// entry.
func (s *Store) Get(key string) ([]byte, bool) {
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if s.ttl > 0 && time.Since(info.ModTime()) > s.ttl {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under key, replacing any previous entry.
func (s *Store) Put(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "put-*")
	if err != nil {
		return fmt.Errorf("cache: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: rename: %w", err)
	}
	return nil
}

// Prune deletes expired entries. A no-op without a TTL.
func (s *Store) Prune() error {
	if s.ttl <= 0 {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("cache: read dir: %w", err)
	}
	cutoff := time.Now().Add(-s.ttl)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".blob") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// path maps an arbitrary key to a filesystem-safe file name.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".blob")
}

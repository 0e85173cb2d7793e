// Package cache keeps fetched Jira tickets on disk so repeated runs do not
// hit the tracker.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groomroom/groomroom/internal/domain"
)

// Store is a file-based ticket cache.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the ticket cache under dir. Returns (nil, nil) if no cache exists.
func (s *Store) Load(dir string) (*domain.TicketCache, error) {
	data, err := os.ReadFile(cachePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var c domain.TicketCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding ticket cache: %w", err)
	}
	c.Dir = dir
	return &c, nil
}

// Save writes the cache to c.Dir, creating directories as needed.
func (s *Store) Save(c *domain.TicketCache) error {
	if err := os.MkdirAll(cacheDir(c.Dir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(c.Dir), data, 0644)
}

// Invalidate removes the cache file under dir.
func (s *Store) Invalidate(dir string) error {
	if err := os.Remove(cachePath(dir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(dir string) string {
	return filepath.Join(dir, ".groomroom", "cache")
}

func cachePath(dir string) string {
	return filepath.Join(dir, ".groomroom", "cache", "tickets.json")
}

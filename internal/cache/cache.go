// Package cache persists analysis results between runs, keyed by the
// detection configuration and a BLAKE3 digest of the scanned corpus.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/dupehound/dupehound/pkg/detect"
)

// Cache provides file-based caching for analysis results.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// Entry represents a cached analysis result.
type Entry struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// New creates a cache rooted at dir. A disabled cache accepts every call
// and stores nothing.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CorpusKey derives a cache key from the detection thresholds and every
// scanned file's path and content. Any change to the config or the corpus
// invalidates the key.
func CorpusKey(cfg detect.Config, files []detect.FileRecord) string {
	h := blake3.New()
	fmt.Fprintf(h, "min_lines=%d;min_tokens=%d;threshold=%g\n",
		cfg.MinLines, cfg.MinTokens, cfg.SimilarityThreshold)
	for _, f := range files {
		fmt.Fprintf(h, "%s\x00", f.Path)
		h.WriteString(f.Content)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetAnalysis retrieves a cached analysis for the key, if present and
// unexpired.
func (c *Cache) GetAnalysis(key string) (*detect.Analysis, bool) {
	data, ok := c.get(key)
	if !ok {
		return nil, false
	}
	var analysis detect.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, false
	}
	return &analysis, true
}

// SetAnalysis stores an analysis under the key.
func (c *Cache) SetAnalysis(key string, analysis *detect.Analysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.set(key, data)
}

func (c *Cache) get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.keyPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Key != key {
		return nil, false
	}
	if time.Since(entry.Timestamp) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

func (c *Cache) set(key string, data []byte) error {
	if !c.enabled {
		return nil
	}

	entry := Entry{
		Key:       key,
		Timestamp: time.Now(),
		Data:      data,
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.keyPath(key), entryData, 0o600)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath converts a key to a filesystem path. Keys are hashed so no raw
// key material needs to be path-safe.
func (c *Cache) keyPath(key string) string {
	hash := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

// Stats summarizes the cache directory.
type Stats struct {
	Entries   int           `json:"entries"`
	TotalSize int64         `json:"total_size"`
	OldestAge time.Duration `json:"oldest_age"`
	NewestAge time.Duration `json:"newest_age"`
}

// GetStats returns statistics about the cache.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.enabled {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest, newest time.Time

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		stats.Entries++
		stats.TotalSize += info.Size()

		modTime := info.ModTime()
		if oldest.IsZero() || modTime.Before(oldest) {
			oldest = modTime
		}
		if newest.IsZero() || modTime.After(newest) {
			newest = modTime
		}

		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return nil, err
	}

	if !oldest.IsZero() {
		stats.OldestAge = time.Since(oldest)
	}
	if !newest.IsZero() {
		stats.NewestAge = time.Since(newest)
	}

	return stats, nil
}

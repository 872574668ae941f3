package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Disk is a JSON file cache keyed by the md5 of the request parameters.
// Freshness is judged from the file's modification time, so entries
// survive restarts and need no index.
type Disk struct {
	dir     string
	ttl     time.Duration
	enabled bool
	log     zerolog.Logger
}

func NewDisk(dir string, ttl time.Duration, enabled bool, log zerolog.Logger) *Disk {
	d := &Disk{
		dir:     dir,
		ttl:     ttl,
		enabled: enabled,
		log:     log.With().Str("component", "diskcache").Logger(),
	}
	if enabled {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			d.log.Warn().Err(err).Str("dir", dir).Msg("cache dir unavailable, disabling")
			d.enabled = false
		}
	}
	return d
}

func (d *Disk) path(category string, key any) (string, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(raw)
	return filepath.Join(d.dir, fmt.Sprintf("%s_%x.json", category, sum)), nil
}

// Get loads a fresh cached record into out. Stale or unreadable files
// are misses.
func (d *Disk) Get(category string, key any, out any) bool {
	if !d.enabled {
		return false
	}
	path, err := d.path(category, key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if d.ttl > 0 && time.Since(info.ModTime()) > d.ttl {
		return false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		d.log.Debug().Err(err).Str("path", path).Msg("corrupt cache file")
		return false
	}
	return true
}

// Set stores a record. Failures only log; caching is best effort.
func (d *Disk) Set(category string, key any, value any) {
	if !d.enabled {
		return
	}
	path, err := d.path(category, key)
	if err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		d.log.Debug().Err(err).Msg("cache marshal failed")
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		d.log.Debug().Err(err).Str("path", path).Msg("cache write failed")
	}
}

// Purge removes entries older than maxAge, returning how many files
// were deleted.
func (d *Disk) Purge(maxAge time.Duration) (int, error) {
	if !d.enabled {
		return 0, nil
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(filepath.Join(d.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

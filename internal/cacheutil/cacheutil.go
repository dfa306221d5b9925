// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/awsctl/internal/log"
)

// Entry is one cached file. Key is the caller's key and EncodedKey the
// hashed file name it is stored under.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Dir resolves the cache root: AWSCTL_CACHE_DIR when non-empty, otherwise
// awsctl under os.UserCacheDir. false means there is nowhere to cache and
// callers treat the cache as off.
func Dir() (string, bool) {
	if c := os.Getenv("AWSCTL_CACHE_DIR"); c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "awsctl"), true
	}
	return "", false
}

// Enabled reports whether caching is on. Only AWSCTL_CACHE=0 or false turns
// it off.
func Enabled() bool {
	switch os.Getenv("AWSCTL_CACHE") {
	case "0", "false":
		return false
	}
	return true
}

// location joins the cache root and subdirs.
func location(subdirs []string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(append([]string{base}, subdirs...)...), true
}

// EntryPath returns where the entry for key lives beneath subdirs and
// whether a file exists there now.
func EntryPath(subdirs []string, key string) (string, bool) {
	dir, ok := location(subdirs)
	if !ok {
		return "", false
	}
	p := filepath.Join(dir, encodeKey(key))
	_, err := os.Stat(p)
	return p, err == nil
}

// Read returns the entry for key with surrounding whitespace trimmed.
func Read(subdirs []string, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, key)
	if !ok {
		return nil, false
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, false
	}

	log.Tracef("cache hit: key=%s path=%s", key, p)
	return &Entry{
		Key:        key,
		EncodedKey: filepath.Base(p),
		Path:       p,
		Data:       bytes.TrimSpace(buf.Bytes()),
		ModTime:    info.ModTime(),
	}, true
}

// Write stores data for key beneath subdirs. The file is written to a temp
// name and renamed so a concurrent Read never sees a partial entry.
func Write(subdirs []string, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	dir, ok := location(subdirs)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, encodeKey(key))); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s bytes=%d", key, len(data))
	return nil
}

// Remove deletes the entry for key. A missing entry is not an error.
func Remove(subdirs []string, key string) error {
	p, _ := EntryPath(subdirs, key)
	if p == "" {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Purge removes files beneath subdirs last written more than hours ago.
// hours <= 0 disables purging.
func Purge(hours int, subdirs ...string) error {
	if hours <= 0 {
		log.Debug("cache purge disabled")
		return nil
	}
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	return sweep(subdirs, func(mod time.Time) bool { return mod.Before(cutoff) })
}

// Clear removes every file beneath subdirs.
func Clear(subdirs ...string) error {
	return sweep(subdirs, func(time.Time) bool { return true })
}

// sweep walks subdirs and removes the files stale reports true for. Files
// that vanish mid-walk, as when two runs purge at once, are skipped.
func sweep(subdirs []string, stale func(time.Time) bool) error {
	root, ok := location(subdirs)
	if !ok {
		return nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || !stale(info.ModTime()) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempCache points the cache at a fresh directory for one test.
func useTempCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWSCTL_CACHE_DIR", dir)
	t.Setenv("AWSCTL_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := useTempCache(t)

	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	t.Setenv("AWSCTL_CACHE_DIR", "")
	got, ok = Dir()
	if ok {
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "awsctl", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("AWSCTL_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	useTempCache(t)
	subdirs := []string{"history", "ec2"}

	require.NoError(t, Write(subdirs, "describe-vpn-gateways|current", []byte("  {\"a\":1}\n")))

	entry, ok := Read(subdirs, "describe-vpn-gateways|current")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(entry.Data))
	assert.Equal(t, "describe-vpn-gateways|current", entry.Key)
	assert.Len(t, entry.EncodedKey, 64)
	assert.False(t, entry.ModTime.IsZero())

	_, ok = Read(subdirs, "missing")
	assert.False(t, ok)
}

func TestWrite_Disabled(t *testing.T) {
	useTempCache(t)
	t.Setenv("AWSCTL_CACHE", "0")

	require.NoError(t, Write([]string{"x"}, "k", []byte("v")))
	_, ok := Read([]string{"x"}, "k")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	useTempCache(t)

	require.NoError(t, Write([]string{"x"}, "k", []byte("v")))
	require.NoError(t, Remove([]string{"x"}, "k"))
	require.NoError(t, Remove([]string{"x"}, "k"))

	_, ok := Read([]string{"x"}, "k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	useTempCache(t)

	require.NoError(t, Write([]string{"history"}, "old", []byte("old")))
	require.NoError(t, Write([]string{"history"}, "new", []byte("new")))

	oldPath, ok := EntryPath([]string{"history"}, "old")
	require.True(t, ok)
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(0, "history"))
	_, ok = Read([]string{"history"}, "old")
	assert.True(t, ok, "hours <= 0 is a no-op")

	require.NoError(t, Purge(24, "history"))
	_, ok = Read([]string{"history"}, "old")
	assert.False(t, ok)
	_, ok = Read([]string{"history"}, "new")
	assert.True(t, ok)
}

func TestPurge_MissingDir(t *testing.T) {
	useTempCache(t)
	assert.NoError(t, Purge(1, "does", "not", "exist"))
}

func TestClear(t *testing.T) {
	useTempCache(t)

	require.NoError(t, Write([]string{"history", "ec2"}, "a", []byte("a")))
	require.NoError(t, Write([]string{"history", "eb"}, "b", []byte("b")))
	require.NoError(t, Write([]string{"other"}, "c", []byte("c")))

	require.NoError(t, Clear("history"))

	_, ok := Read([]string{"history", "ec2"}, "a")
	assert.False(t, ok)
	_, ok = Read([]string{"history", "eb"}, "b")
	assert.False(t, ok)
	_, ok = Read([]string{"other"}, "c")
	assert.True(t, ok)
}

func TestWrite_Overwrite(t *testing.T) {
	dir := useTempCache(t)

	require.NoError(t, Write([]string{"x"}, "k", []byte("one")))
	require.NoError(t, Write([]string{"x"}, "k", []byte("two")))

	entry, ok := Read([]string{"x"}, "k")
	require.True(t, ok)
	assert.Equal(t, "two", string(entry.Data))

	files, err := os.ReadDir(filepath.Join(dir, "x"))
	require.NoError(t, err)
	assert.Len(t, files, 1, "no temp files left behind")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(20*time.Millisecond), WithMinInterval(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func waitChange(t *testing.T, w *Watcher, timeout time.Duration) (Change, bool) {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c, true
	case <-time.After(timeout):
		return Change{}, false
	}
}

func TestWatcher_ReportsExternalEdit(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "memo.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))
	require.NoError(t, w.Track(path, []byte("v1")))

	require.NoError(t, os.WriteFile(path, []byte("v2 from elsewhere"), 0644))

	c, ok := waitChange(t, w, 3*time.Second)
	require.True(t, ok, "expected a change")
	assert.Equal(t, filepath.Clean(path), c.Path)
	assert.Equal(t, Modified, c.Op)
}

func TestWatcher_SilentForKnownContent(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "memo.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))
	require.NoError(t, w.Track(path, []byte("v1")))

	// What the app does after its own save.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
	require.NoError(t, w.Track(path, []byte("v2")))

	_, ok := waitChange(t, w, 300*time.Millisecond)
	assert.False(t, ok, "own save must not be reported")
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "memo.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))
	require.NoError(t, w.Track(path, []byte("v1")))

	require.NoError(t, os.Remove(path))

	c, ok := waitChange(t, w, 3*time.Second)
	require.True(t, ok)
	assert.Equal(t, Removed, c.Op)
	assert.Equal(t, "removed", c.Op.String())
}

func TestWatcher_UntrackedFilesIgnored(t *testing.T) {
	w := newTestWatcher(t)
	dir := t.TempDir()
	tracked := filepath.Join(dir, "tracked.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("x"), 0644))
	require.NoError(t, w.Track(tracked, []byte("x")))

	require.NoError(t, os.WriteFile(other, []byte("y"), 0644))
	_, ok := waitChange(t, w, 300*time.Millisecond)
	assert.False(t, ok)

	w.Untrack(tracked)
	require.NoError(t, os.WriteFile(tracked, []byte("changed"), 0644))
	_, ok = waitChange(t, w, 300*time.Millisecond)
	assert.False(t, ok)
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, open := <-w.Changes()
	assert.False(t, open)
}

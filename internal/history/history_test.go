// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord_AssignsIDAndTime(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600))
	s.now = func() time.Time { return fixed }

	e, err := s.Record(context.Background(), Entry{Slot: 1, Path: "/tmp/a.txt", Encoding: "SJIS", Action: ActionLoad})
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.True(t, e.At.Equal(fixed))
	assert.Equal(t, time.UTC, e.At.Location())

	_, err = s.Record(context.Background(), Entry{Slot: 1})
	assert.Error(t, err)
}

func TestLast_PerSlot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Last(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, e := range []Entry{
		{Slot: 0, Path: "/m/a.txt", Encoding: "UTF8", Action: ActionSave},
		{Slot: 1, Path: "/m/b.txt", Encoding: "EUCJP", Action: ActionLoad},
		{Slot: 0, Path: "/m/c.txt", Encoding: "SJIS", Action: ActionLoad},
	} {
		_, err := s.Record(ctx, e)
		require.NoError(t, err)
	}

	last, err := s.Last(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "/m/c.txt", last.Path)
	assert.Equal(t, "SJIS", last.Encoding)
	assert.Equal(t, ActionLoad, last.Action)

	last, err = s.Last(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "/m/b.txt", last.Path)
}

func TestRecent_DistinctNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"/m/a.txt", "/m/b.txt", "/m/a.txt", "/m/c.txt"} {
		_, err := s.Record(ctx, Entry{Path: p, Encoding: "UTF8", Action: ActionSave})
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	var paths []string
	for _, e := range recent {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"/m/c.txt", "/m/a.txt", "/m/b.txt"}, paths)

	recent, err = s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestForget(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, Entry{Slot: 2, Path: "/m/gone.txt", Encoding: "UTF8", Action: ActionLoad})
	require.NoError(t, err)
	require.NoError(t, s.Forget(ctx, "/m/gone.txt"))

	_, err = s.Last(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Entry{Path: "/m/a.txt", Encoding: "UTF8", Action: ActionSave})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	last, err := s.Last(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "/m/a.txt", last.Path)
}

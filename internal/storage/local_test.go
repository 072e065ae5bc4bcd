package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutListOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{
		"log_data/2018-11-02-events.json",
		"log_data/2018-11-01-events.json",
		"log_data_old/2018-10-01-events.json",
		"song-data/A/A/A/TRAAAAW.json",
	} {
		require.NoError(t, store.Put(ctx, key, strings.NewReader(key)))
	}

	keys, err := store.List(ctx, "log_data/")
	require.NoError(t, err)
	assert.Equal(t, []string{"log_data/2018-11-01-events.json", "log_data/2018-11-02-events.json"}, keys)

	keys, err = store.List(ctx, "log_data")
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	rc, err := store.Open(ctx, "song-data/A/A/A/TRAAAAW.json")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "song-data/A/A/A/TRAAAAW.json", string(b))
}

func TestLocal_ListMissingDirectory(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	keys, err := store.List(context.Background(), "song-data/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocal_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "songs/year=2018/part-0.parquet", strings.NewReader("x")))
	require.NoError(t, store.Put(ctx, "songs_backup/part-0.parquet", strings.NewReader("x")))

	require.NoError(t, store.DeletePrefix(ctx, "songs/"))

	keys, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"songs_backup/part-0.parquet"}, keys)

	require.ErrorIs(t, store.DeletePrefix(ctx, ""), ErrEmptyPrefix)
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	err = store.Put(context.Background(), "../outside.json", strings.NewReader("x"))
	require.Error(t, err)
}

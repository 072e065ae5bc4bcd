package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkify_etl/internal/storage"
)

type logLine struct {
	Page   string           `json:"page"`
	UserID Nullable[string] `json:"userId"`
	Ts     int64            `json:"ts"`
}

var logLineSchema = Schema{Name: "log", Required: []string{"page", "userId", "ts"}}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	s, err := NewSession(WithWorkers(4), WithLogger(logger), WithStagingBase(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func newLocalStore(t *testing.T, files map[string]string) storage.Store {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	for key, body := range files {
		require.NoError(t, store.Put(context.Background(), key, strings.NewReader(body)))
	}
	return store
}

func TestReadJSON(t *testing.T) {
	store := newLocalStore(t, map[string]string{
		"log_data/2018-11-01-events.json": `{"page":"NextSong","userId":"39","ts":1541105830796}
{"page":"Home","userId":null,"ts":1541106106796}
`,
		"log_data/2018-11-02-events.json": `{"page":"NextSong","userId":"8","ts":1541121934796}{"page":"Logout","userId":"8","ts":1541122241796}`,
		"log_data/nested/ignored.json":    `{"broken": `,
		"log_data/readme.txt":             `not json`,
	})
	s := newTestSession(t)

	d, err := ReadJSON[logLine](context.Background(), s, store, "log_data/*.json", logLineSchema)
	require.NoError(t, err)

	assert.Equal(t, 2, d.NumPartitions())
	assert.Equal(t, []logLine{
		{Page: "NextSong", UserID: NullableOf("39"), Ts: 1541105830796},
		{Page: "Home", Ts: 1541106106796},
		{Page: "NextSong", UserID: NullableOf("8"), Ts: 1541121934796},
		{Page: "Logout", UserID: NullableOf("8"), Ts: 1541122241796},
	}, d.Collect())
}

func TestReadJSON_NestedGlob(t *testing.T) {
	store := newLocalStore(t, map[string]string{
		"song-data/A/A/A/TRAAAAW.json":    `{"page":"x","userId":"1","ts":1}`,
		"song-data/A/B/C/TRABCEI.json":    `{"page":"y","userId":"2","ts":2}`,
		"song-data/A/B/TRTOOSHALLOW.json": `{"page":"z","userId":"3","ts":3}`,
	})
	s := newTestSession(t)

	d, err := ReadJSON[logLine](context.Background(), s, store, "song-data/*/*/*/*.json", logLineSchema)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count())
}

func TestReadJSON_MissingField(t *testing.T) {
	store := newLocalStore(t, map[string]string{
		"log_data/a.json": `{"page":"NextSong","userId":"39","ts":1}
{"page":"NextSong","ts":2}`,
	})
	s := newTestSession(t)

	_, err := ReadJSON[logLine](context.Background(), s, store, "log_data/*.json", logLineSchema)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "userId", schemaErr.Field)
	assert.Equal(t, 1, schemaErr.Record)
	assert.Equal(t, "log_data/a.json", schemaErr.Key)
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := map[string]string{
		"truncated":  `{"page":"NextSong",`,
		"not object": `["page"]`,
		"bad type":   `{"page":"NextSong","userId":"39","ts":"soon"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			store := newLocalStore(t, map[string]string{"log_data/a.json": body})
			s := newTestSession(t)

			_, err := ReadJSON[logLine](context.Background(), s, store, "log_data/*.json", logLineSchema)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "log_data/a.json", loadErr.Key)
		})
	}
}

func TestReadJSON_NoFiles(t *testing.T) {
	store := newLocalStore(t, nil)
	s := newTestSession(t)

	_, err := ReadJSON[logLine](context.Background(), s, store, "log_data/*.json", logLineSchema)
	require.ErrorIs(t, err, ErrNoInput)
}

func TestStaticPrefix(t *testing.T) {
	assert.Equal(t, "song-data/", staticPrefix("song-data/*/*/*/*.json"))
	assert.Equal(t, "log_data/", staticPrefix("log_data/*.json"))
	assert.Equal(t, "", staticPrefix("*.json"))
	assert.Equal(t, "a/b.json", staticPrefix("a/b.json"))
}

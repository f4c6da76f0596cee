package store

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// exerciseKV runs the contract every implementation must satisfy
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	// missing key
	_, ok, err := kv.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	// set then get
	require.NoError(t, kv.Set("posts", []byte(`[{"id":"1"}]`)))
	value, ok, err := kv.Get("posts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(value))

	// replace
	require.NoError(t, kv.Set("posts", []byte(`[]`)))
	value, ok, err = kv.Get("posts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(value))

	// remove, twice
	require.NoError(t, kv.Remove("posts"))
	_, ok, err = kv.Get("posts")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, kv.Remove("posts"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLiteKV(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	kv, err := NewSQLite(dbPath, testLogger())
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	kv, err := NewSQLite(dbPath, testLogger())
	require.NoError(t, err)
	require.NoError(t, kv.Set("settings", []byte(`{"siteName":"hub"}`)))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLite(dbPath, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"siteName":"hub"}`, string(value))
}

func TestMemoryCopiesValues(t *testing.T) {
	kv := NewMemory()

	original := []byte("abc")
	require.NoError(t, kv.Set("k", original))
	original[0] = 'z'

	value, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(value))

	// mutating the returned slice must not touch the stored copy
	value[0] = 'z'
	value, _, _ = kv.Get("k")
	assert.Equal(t, "abc", string(value))
}

func TestMemoryFailWrites(t *testing.T) {
	kv := NewMemory()
	kv.FailWrites = true

	assert.ErrorIs(t, kv.Set("k", []byte("v")), ErrWriteRefused)
	assert.ErrorIs(t, kv.Remove("k"), ErrWriteRefused)
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "comments:p1", CommentsKey("p1"))
	assert.Equal(t, "vote:p1:owl", VoteKey("p1", "owl"))
	assert.Equal(t, "rating:p1:owl", RatingKey("p1", "owl"))
}

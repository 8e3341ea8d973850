package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "todo-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// exerciseKeyValue runs the shared contract against any implementation.
func exerciseKeyValue(t *testing.T, kv KeyValue) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report ok=false")

	require.NoError(t, kv.Set(ctx, "todos", `[{"id":"a"}]`))
	got, ok, err := kv.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, got)

	require.NoError(t, kv.Set(ctx, "todos", ""))
	got, ok, err = kv.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok, "empty string is a stored value")
	assert.Equal(t, "", got)

	require.NoError(t, kv.Set(ctx, "other", "x"))
	require.NoError(t, kv.Delete(ctx, "todos"))
	_, ok, err = kv.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err = kv.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	require.NoError(t, kv.Delete(ctx, "never-set"))
}

func TestMemoryKVContract(t *testing.T) {
	exerciseKeyValue(t, NewMemoryKV())
}

func TestSQLiteKVContract(t *testing.T) {
	exerciseKeyValue(t, setupSQLiteKV(t))
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "todos", "[1]"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	got, ok, err := second.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", got)
}

func TestSQLiteKVUpdatedAt(t *testing.T) {
	kv := setupSQLiteKV(t)
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	_, ok, err := kv.UpdatedAt(t.Context(), "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(t.Context(), "todos", "[]"))
	at, ok, err := kv.UpdatedAt(t.Context(), "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(fixed), "got %v", at)
}

func TestNewSQLiteKVNilDB(t *testing.T) {
	_, err := NewSQLiteKV(nil)
	assert.ErrorIs(t, err, ErrNilDB)
}

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Basic(t *testing.T) {
	s, err := Open(Options{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s.Put("a", []byte("doc_a"))
	s.Put("b", []byte("doc_b"))
	assert.Equal(t, 2, s.Len())

	doc, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("doc_a"), doc)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	s.Put("a", []byte("doc_a"))
	s.Put("b", []byte("doc_b"))
	require.NoError(t, s.Save())

	reopened, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())

	doc, err := reopened.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []byte("doc_b"), doc)
}

func TestStore_EvictsLeastRecentlyAccessed(t *testing.T) {
	s, err := Open(Options{Dir: t.TempDir(), MaxEntries: 2})
	require.NoError(t, err)

	s.Put("a", []byte("doc_a"))
	time.Sleep(time.Millisecond)
	s.Put("b", []byte("doc_b"))
	time.Sleep(time.Millisecond)

	// Touch 'a' so 'b' becomes the eviction candidate.
	_, err = s.Get("a")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	s.Put("c", []byte("doc_c"))
	assert.Equal(t, 2, s.Len())

	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound, "b should have been evicted")

	_, err = s.Get("a")
	assert.NoError(t, err, "a should still be present")
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	s.Put("a", []byte("doc_a"))
	require.NoError(t, s.Save())

	// Clobber the cache file; reopening must not fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documents.msgpack"), []byte("not msgpack"), 0o644))

	reopened, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestStore_RequiresDir(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	content := []byte("class C {}")

	k1 := Key(content, "f")
	k2 := Key(content, "f")
	assert.Equal(t, k1, k2, "key must be deterministic")

	assert.NotEqual(t, k1, Key(content, "g"), "method name must affect the key")
	assert.NotEqual(t, k1, Key([]byte("class D {}"), "f"), "content must affect the key")
	assert.Len(t, k1, 64)
}

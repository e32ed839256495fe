// Package cache stores rendered per-method context documents keyed by
// source digest, so repeated analyses of unchanged files are served from
// disk instead of re-running the graph pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when no document exists for a key.
var ErrNotFound = errors.New("document not found")

// Key derives the cache key for one method of one source file: the digest
// of the file content plus the method name, so any edit to the file
// invalidates every method in it.
func Key(content []byte, methodName string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(methodName))
	return hex.EncodeToString(h.Sum(nil))
}

// entry is one stored document with access metadata for eviction.
type entry struct {
	Key        string    `msgpack:"key"`
	Document   []byte    `msgpack:"document"`
	AccessedAt time.Time `msgpack:"accessed_at"`
}

// Store is a bounded document cache persisted as a single msgpack file.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
	entries    map[string]*entry
}

// Options configures a Store.
type Options struct {
	// Dir is the directory holding the cache file.
	Dir string
	// MaxEntries bounds the number of stored documents; 0 means 4096.
	MaxEntries int
}

const defaultMaxEntries = 4096

// Open loads the store from disk, creating the directory as needed.
// A missing or unreadable cache file starts an empty store rather than
// failing: the cache is a shortcut, never a dependency.
func Open(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("cache dir is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	s := &Store{
		path:       filepath.Join(opts.Dir, "documents.msgpack"),
		maxEntries: opts.MaxEntries,
		entries:    make(map[string]*entry),
	}
	if s.maxEntries <= 0 {
		s.maxEntries = defaultMaxEntries
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s, nil
	}
	var stored []*entry
	if err := msgpack.Unmarshal(data, &stored); err != nil {
		return s, nil
	}
	for _, e := range stored {
		s.entries[e.Key] = e
	}
	return s, nil
}

// Get returns the document stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	e.AccessedAt = time.Now()
	return e.Document, nil
}

// Put stores a document, evicting the least recently accessed entries when
// the store is over capacity.
func (s *Store) Put(key string, document []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry{
		Key:        key,
		Document:   document,
		AccessedAt: time.Now(),
	}
	s.evict()
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save writes the store to disk atomically (write-then-rename).
func (s *Store) Save() error {
	s.mu.Lock()
	stored := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		stored = append(stored, e)
	}
	s.mu.Unlock()

	sort.Slice(stored, func(i, j int) bool { return stored[i].Key < stored[j].Key })

	data, err := msgpack.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing cache: %w", err)
	}
	return nil
}

// evict drops least recently accessed entries until under capacity.
// Caller holds the lock.
func (s *Store) evict() {
	for len(s.entries) > s.maxEntries {
		var oldest *entry
		for _, e := range s.entries {
			if oldest == nil || e.AccessedAt.Before(oldest.AccessedAt) {
				oldest = e
			}
		}
		delete(s.entries, oldest.Key)
	}
}

// Package snapshot holds the append-only collection of immutable dataset
// versions plus the current/previous pointer pair, persisted through the
// blob store boundary.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/claimboard/claimboard/internal/blob"
	"github.com/claimboard/claimboard/internal/core"
)

const (
	versionsKey = "claims/versions"
	pointersKey = "claims/pointers"
)

// ErrVersionNotFound is returned when a requested version id is unknown.
var ErrVersionNotFound = errors.New("snapshot: version not found")

// Metadata is the display information attached to a version.
type Metadata struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// Version is an immutable point-in-time copy of the full claim set.
// Versions are created by ingestion and never mutated afterwards.
type Version struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Metadata  Metadata     `json:"metadata"`
	Data      []core.Claim `json:"data"`
}

// pointers is the persisted current/previous id pair.
type pointers struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
}

// Store owns the version mapping and pointer pair. All mutations apply
// their read-modify-write under one mutex so concurrent saves cannot lose
// a pointer rotation. Persistence failures are logged and degrade to
// in-memory behavior: a failed read starts empty, a failed write is lost,
// not retried.
type Store struct {
	mu       sync.Mutex
	blobs    blob.Store
	logger   *slog.Logger
	versions map[string]Version
	ptrs     pointers
	entropy  *ulid.MonotonicEntropy
}

// New creates a Store over the given blob boundary and loads any persisted
// state. A missing blob is a fresh install, not an error.
func New(blobs blob.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		blobs:    blobs,
		logger:   logger,
		versions: make(map[string]Version),
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	s.load()
	return s
}

// load reads the persisted version mapping and pointer pair. Read failures
// fall back to an empty store so the application stays usable.
func (s *Store) load() {
	raw, err := s.blobs.Get(versionsKey)
	switch {
	case errors.Is(err, blob.ErrNotFound):
		return
	case err != nil:
		s.logger.Warn("reading persisted versions failed, starting empty", "error", err)
		return
	}
	if err := json.Unmarshal(raw, &s.versions); err != nil {
		s.logger.Warn("persisted versions are unreadable, starting empty", "error", err)
		s.versions = make(map[string]Version)
		return
	}

	raw, err = s.blobs.Get(pointersKey)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			s.logger.Warn("reading version pointers failed", "error", err)
		}
		return
	}
	if err := json.Unmarshal(raw, &s.ptrs); err != nil {
		s.logger.Warn("version pointers are unreadable", "error", err)
		s.ptrs = pointers{}
	}
}

// Initialize seeds the store when no persisted state exists. The seed data
// becomes the current version; seedPrevious, when non-nil, becomes the
// previous one. A store that loaded persisted state is left untouched.
func (s *Store) Initialize(seedCurrent []core.Claim, seedPrevious []core.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.versions) > 0 {
		return
	}

	now := time.Now()
	if seedPrevious != nil {
		prev := s.newVersion(now.Add(-10*time.Second), seedPrevious, Metadata{
			Name: "Seed (previous)",
			Rows: len(seedPrevious),
		})
		s.versions[prev.ID] = prev
		s.ptrs.Previous = prev.ID
	}
	cur := s.newVersion(now, seedCurrent, Metadata{
		Name: "Seed (current)",
		Rows: len(seedCurrent),
	})
	s.versions[cur.ID] = cur
	s.ptrs.Current = cur.ID

	s.persist()
}

// SaveNewVersion appends an immutable version holding records and rotates
// the pointer pair: the new version becomes current, the prior current
// becomes previous. History accumulates monotonically; nothing is deleted.
func (s *Store) SaveNewVersion(records []core.Claim, meta Metadata) Version {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.newVersion(time.Now(), records, meta)
	s.versions[v.ID] = v
	s.ptrs = pointers{Current: v.ID, Previous: s.ptrs.Current}
	s.persist()
	return v
}

// newVersion builds a version with a fresh time-ordered id. The monotonic
// entropy source guarantees unique ids under rapid successive calls; the
// caller must hold the store mutex.
func (s *Store) newVersion(ts time.Time, records []core.Claim, meta Metadata) Version {
	data := make([]core.Claim, len(records))
	copy(data, records)
	id := "v_" + ulid.MustNew(ulid.Timestamp(ts), s.entropy).String()
	return Version{ID: id, Timestamp: ts, Metadata: meta, Data: data}
}

// persist writes the version mapping and pointer pair back through the
// blob boundary. Failed writes are logged and lost, not retried.
func (s *Store) persist() {
	raw, err := json.Marshal(s.versions)
	if err != nil {
		s.logger.Error("encoding versions failed", "error", err)
		return
	}
	if err := s.blobs.Set(versionsKey, raw); err != nil {
		s.logger.Warn("persisting versions failed, continuing in memory", "error", err)
	}

	raw, err = json.Marshal(s.ptrs)
	if err != nil {
		s.logger.Error("encoding version pointers failed", "error", err)
		return
	}
	if err := s.blobs.Set(pointersKey, raw); err != nil {
		s.logger.Warn("persisting version pointers failed", "error", err)
	}
}

// Get returns one version by id.
func (s *Store) Get(id string) (Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.versions[id]
	if !ok {
		return Version{}, fmt.Errorf("%w: %s", ErrVersionNotFound, id)
	}
	return v, nil
}

// Current returns the version the current pointer designates, if any.
func (s *Store) Current() (Version, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.versions[s.ptrs.Current]
	return v, ok
}

// Previous returns the version that was current immediately prior, if any.
func (s *Store) Previous() (Version, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.versions[s.ptrs.Previous]
	return v, ok
}

// History returns all versions ordered newest-timestamp-first.
func (s *Store) History() []Version {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Version, 0, len(s.versions))
	for _, v := range s.versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Len returns the number of stored versions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.versions)
}

// Package preview keeps in-progress credential drafts and renders their
// live previews. Edits are debounced so a burst of keystrokes produces a
// single render once the draft goes quiet.
package preview

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"minet/internal/credential"
	domainerrors "minet/pkg/domain-errors"
	psync "minet/pkg/platform/sync"
)

// Draft is one in-progress credential with its latest rendered preview.
// Version increments on every update; RenderedVersion trails it until the
// debounced render catches up.
type Draft struct {
	ID              string          `json:"id"`
	Data            credential.Data `json:"data"`
	Preview         string          `json:"preview,omitempty"`
	Version         uint64          `json:"version"`
	RenderedVersion uint64          `json:"renderedVersion"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Pending reports whether an edit is still waiting for its render.
func (d Draft) Pending() bool {
	return d.RenderedVersion < d.Version
}

// Store is an in-memory draft store. The map is guarded by mu; draft
// contents are serialized per ID so edits to different drafts never
// contend with each other.
type Store struct {
	mu     sync.RWMutex
	locks  *psync.ShardedMutex
	drafts map[string]*Draft
}

// NewStore creates an empty draft store.
func NewStore() *Store {
	return &Store{
		locks:  psync.NewShardedMutex(),
		drafts: make(map[string]*Draft),
	}
}

func (s *Store) lookup(id string) *Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[id]
}

// Create registers a new draft and returns its copy.
func (s *Store) Create(data credential.Data) Draft {
	d := &Draft{
		ID:        uuid.NewString(),
		Data:      data,
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()

	return *d
}

// Update replaces a draft's data and bumps its version.
func (s *Store) Update(id string, data credential.Data) (Draft, error) {
	d := s.lookup(id)
	if d == nil {
		return Draft{}, domainerrors.New(domainerrors.CodeNotFound, "draft not found")
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	d.Data = data
	d.Version++
	d.UpdatedAt = time.Now().UTC()
	return *d, nil
}

// Get returns a copy of the draft.
func (s *Store) Get(id string) (Draft, error) {
	d := s.lookup(id)
	if d == nil {
		return Draft{}, domainerrors.New(domainerrors.CodeNotFound, "draft not found")
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)
	return *d, nil
}

// SetPreview publishes a rendered preview for the given draft version.
// Stale renders lose: the preview is dropped when a newer render already
// landed. It reports whether the preview was stored.
func (s *Store) SetPreview(id, preview string, version uint64) bool {
	d := s.lookup(id)
	if d == nil {
		return false
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if version < d.RenderedVersion {
		return false
	}
	d.Preview = preview
	d.RenderedVersion = version
	return true
}

// Delete removes a draft. Missing IDs are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

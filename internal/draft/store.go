// Package draft keeps in-progress payment requests in memory so a client can
// resume editing later. Entries are versioned and expire after a TTL; expired
// or version-mismatched entries are treated as absent and evicted.
package draft

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nmluan/payreq-pdf/internal/model"
)

// PayloadVersion changes whenever the stored record shape changes. Entries
// saved under another version are discarded on load.
const PayloadVersion = "1.0"

// DefaultTTL is how long drafts are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned when a draft does not exist, has expired or was
// saved under an incompatible payload version.
var ErrNotFound = errors.New("không tìm thấy bản nháp")

type entry struct {
	version string
	record  *model.PaymentRequest
	savedAt time.Time
}

// Store is a thread-safe TTL draft store.
type Store struct {
	mutex sync.RWMutex
	ttl   time.Duration
	items map[string]*entry
	now   func() time.Time
}

// NewStore creates a store with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:   ttl,
		items: make(map[string]*entry),
		now:   time.Now,
	}
}

// Save stores a sanitized copy of the record and returns its key. Attachments
// never enter the store.
func (s *Store) Save(rec *model.PaymentRequest) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := uuid.NewString()
	s.items[key] = &entry{
		version: PayloadVersion,
		record:  rec.Sanitized(),
		savedAt: s.now(),
	}
	return key
}

// Load returns a copy of the draft stored under key. Expired and
// version-mismatched entries are evicted and reported as ErrNotFound.
func (s *Store) Load(key string) (*model.PaymentRequest, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, exists := s.items[key]
	if !exists {
		return nil, ErrNotFound
	}
	if e.version != PayloadVersion || s.now().Sub(e.savedAt) > s.ttl {
		delete(s.items, key)
		return nil, ErrNotFound
	}

	return e.record.Sanitized(), nil
}

// Remove deletes the draft stored under key.
func (s *Store) Remove(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.items[key]; exists {
		delete(s.items, key)
		return true
	}
	return false
}

// Clear removes all drafts.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items = make(map[string]*entry)
}

// Len returns the number of stored drafts, including ones that expired but
// have not been touched since.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// Info describes one stored draft.
type Info struct {
	Key       string    `json:"key"`
	SavedAt   time.Time `json:"savedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// List returns metadata for all live drafts and evicts expired ones.
func (s *Store) List() []Info {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	infos := make([]Info, 0, len(s.items))
	for key, e := range s.items {
		if e.version != PayloadVersion || now.Sub(e.savedAt) > s.ttl {
			delete(s.items, key)
			continue
		}
		infos = append(infos, Info{
			Key:       key,
			SavedAt:   e.savedAt,
			ExpiresAt: e.savedAt.Add(s.ttl),
		})
	}
	return infos
}

package draftstore

import (
	"sync"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
)

// Store is the in-memory draft arena. Drafts are indexed by both draft id
// and draft key, status transitions go through CompareAndSwapStatus so
// commit has a single mutual-exclusion gate, and drafts older than the TTL
// are evicted by Sweep (or lazily on read).
type Store struct {
	ttl time.Duration

	mu    sync.RWMutex
	byID  map[string]payroll.Draft
	byKey map[string]string

	lockMu   sync.Mutex
	keyLocks map[string]*keyLock
}

// keyLock counts holders and waiters so the entry can be dropped once the
// key is idle.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

func New(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		byID:     make(map[string]payroll.Draft),
		byKey:    make(map[string]string),
		keyLocks: make(map[string]*keyLock),
	}
}

// LockKey serializes callers working on the same draft key. The returned
// function releases the lock; the key's entry is removed once no caller
// holds or waits on it, so the lock map only grows with in-flight keys.
func (s *Store) LockKey(key string) func() {
	s.lockMu.Lock()
	l, ok := s.keyLocks[key]
	if !ok {
		l = &keyLock{}
		s.keyLocks[key] = l
	}
	l.refs++
	s.lockMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.lockMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.keyLocks, key)
		}
		s.lockMu.Unlock()
	}
}

// GetByID returns a copy of the draft. Drafts past their TTL are evicted on
// read and reported as absent.
func (s *Store) GetByID(id string) (payroll.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[id]
	if !ok {
		return payroll.Draft{}, false
	}
	if s.expired(d, time.Now()) {
		s.evict(d)
		return payroll.Draft{}, false
	}
	return copyDraft(d), true
}

// GetByKey returns a copy of the draft registered under key, if any.
func (s *Store) GetByKey(key string) (payroll.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byKey[key]
	if !ok {
		return payroll.Draft{}, false
	}
	d := s.byID[id]
	if s.expired(d, time.Now()) {
		s.evict(d)
		return payroll.Draft{}, false
	}
	return copyDraft(d), true
}

// Put stores the draft, replacing any previous draft with the same id.
func (s *Store) Put(d payroll.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[d.ID] = copyDraft(d)
	s.byKey[d.Key] = d.ID
}

// CompareAndSwapStatus atomically transitions the draft's status and reports
// whether the transition happened.
func (s *Store) CompareAndSwapStatus(id string, from, to payroll.DraftStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[id]
	if !ok || d.Status != from {
		return false
	}
	d.Status = to
	s.byID[id] = d
	return true
}

// SetCommitted marks a committing draft as committed and attaches the
// persisted slips for idempotent repeat commits.
func (s *Store) SetCommitted(id string, slips []payroll.PaymentSlip) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[id]
	if !ok || d.Status != payroll.DraftStatusCommitting {
		return false
	}
	d.Status = payroll.DraftStatusCommitted
	d.Slips = append([]payroll.PaymentSlip(nil), slips...)
	s.byID[id] = d
	return true
}

// Sweep evicts drafts past their TTL and returns how many were removed.
// Drafts mid-commit are left alone regardless of age.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, d := range s.byID {
		if s.expired(d, now) {
			s.evict(d)
			removed++
		}
	}
	return removed
}

// Len returns the number of live drafts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *Store) expired(d payroll.Draft, now time.Time) bool {
	if d.Status == payroll.DraftStatusCommitting {
		return false
	}
	return now.Sub(d.CreatedAt) > s.ttl
}

// evict removes the draft from both indexes; callers hold s.mu.
func (s *Store) evict(d payroll.Draft) {
	delete(s.byID, d.ID)
	if s.byKey[d.Key] == d.ID {
		delete(s.byKey, d.Key)
	}
}

func copyDraft(d payroll.Draft) payroll.Draft {
	out := d
	out.Items = append([]payroll.DraftItem(nil), d.Items...)
	if d.Slips != nil {
		out.Slips = append([]payroll.PaymentSlip(nil), d.Slips...)
	}
	return out
}

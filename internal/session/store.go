// Package session keeps the per-visitor form state in memory. Each session owns
// one shipment form and one location selection flow writing into it; nothing is
// persisted and an expired or deleted session takes its draft with it.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/flow"
	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/shipment"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Session is one open shipment form.
type Session struct {
	ID        string
	CreatedAt time.Time
	Form      *shipment.Form
	Location  *flow.Flow

	mu    sync.Mutex
	notes []apperror.Notification
}

// Notify buffers n until the next Drain.
func (s *Session) Notify(n apperror.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = append(s.notes, n)
}

// Drain returns and forgets the buffered notifications.
func (s *Session) Drain() []apperror.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.notes
	s.notes = nil
	if notes == nil {
		return []apperror.Notification{}
	}
	return notes
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Geocoder  geocode.Geocoder
	Readiness flow.Readiness
	Shipments shipment.Inserter

	OnLookup   flow.Observer
	OnShipment func(outcome string)
	OnResize   func(n int)
}

type Store struct {
	deps  Deps
	cache *expirable.LRU[string, *Session]
	live  atomic.Int64
	now   func() time.Time
}

// NewStore holds at most capacity sessions; a session expires ttl after its
// last use.
func NewStore(deps Deps, capacity int, ttl time.Duration) *Store {
	s := &Store{deps: deps, now: time.Now}
	// the eviction callback runs under the cache lock and must not call back into it
	s.cache = expirable.NewLRU[string, *Session](capacity, func(string, *Session) {
		s.resized(s.live.Add(-1))
	}, ttl)
	return s
}

func (s *Store) Create() *Session {
	sess := &Session{ID: uuid.NewString(), CreatedAt: s.now()}

	formOpts := []shipment.Option{shipment.WithNotifier(sess)}
	if s.deps.OnShipment != nil {
		formOpts = append(formOpts, shipment.WithObserver(s.deps.OnShipment))
	}
	sess.Form = shipment.NewForm(s.deps.Shipments, formOpts...)

	flowOpts := []flow.Option{flow.WithNotifier(sess)}
	if s.deps.OnLookup != nil {
		flowOpts = append(flowOpts, flow.WithObserver(s.deps.OnLookup))
	}
	sess.Location = flow.New(s.deps.Geocoder, s.deps.Readiness, sess.Form, flowOpts...)

	s.live.Add(1)
	s.cache.Add(sess.ID, sess)
	s.resized(s.live.Load())

	return sess
}

// Get returns the session and extends its lifetime.
func (s *Store) Get(id string) (*Session, bool) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, sess)
	return sess, true
}

func (s *Store) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) resized(n int64) {
	if s.deps.OnResize != nil {
		s.deps.OnResize(int(n))
	}
}

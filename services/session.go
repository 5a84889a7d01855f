package services

import (
	"sync"
	"time"
)

// Session bundles the per-user state: cart, wizard and delivery point. One
// session per cookie (web) or chat (bot); handlers serialize access through
// the session mutex.
type Session struct {
	mu sync.Mutex

	Key      string
	Cart     *Cart
	Checkout *Checkout
	Resolver *Resolver

	lastSeen time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionRegistry holds live sessions in memory. There is no persistence:
// an expired or lost session simply starts over with an empty cart.
type SessionRegistry struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	newResolver func() *Resolver
}

func NewSessionRegistry(ttl time.Duration, newResolver func() *Resolver) *SessionRegistry {
	return &SessionRegistry{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		newResolver: newResolver,
	}
}

// Get returns the session for key, creating it on first touch.
func (r *SessionRegistry) Get(key string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[key]
	r.mu.RUnlock()
	if ok {
		r.touch(s)
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		s.lastSeen = time.Now()
		return s
	}
	s = &Session{
		Key:      key,
		Cart:     NewCart(),
		Checkout: NewCheckout(),
		Resolver: r.newResolver(),
		lastSeen: time.Now(),
	}
	r.sessions[key] = s
	return s
}

func (r *SessionRegistry) touch(s *Session) {
	r.mu.Lock()
	s.lastSeen = time.Now()
	r.mu.Unlock()
}

// ResetFlow clears the cart and puts the wizard and resolver back to their
// initial state. Called after an order is placed.
func (r *SessionRegistry) ResetFlow(s *Session) {
	s.Cart.ClearCart()
	s.Checkout = NewCheckout()
	s.Resolver = r.newResolver()
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle longer than the TTL and reports how many were
// removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until stop is closed.
func (r *SessionRegistry) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			r.Sweep(now)
		case <-stop:
			return
		}
	}
}

package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"helioplan/planner"
	"helioplan/solar"
)

// location is the geocoded point the session's irradiance sample belongs to.
type location struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// session is one browser tab's ephemeral workspace: its zone store, the
// irradiance sample for its searched location, and the sequence token that
// lets a newer location search supersede a slower in-flight one. Nothing in
// here survives the session.
type session struct {
	id    string
	store *planner.Store

	mu        sync.Mutex
	sample    solar.Sample
	hasSample bool
	loc       *location
	locSeq    uint64
	lastSeen  time.Time
}

// currentSample returns the fetched irradiance sample, or the conservative
// default before the first successful fetch.
func (s *session) currentSample() solar.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSample {
		return solar.DefaultSample(time.Now().UTC())
	}
	return s.sample
}

// beginLocationChange registers a new location search and returns its
// sequence token. Any result carrying an older token is stale.
func (s *session) beginLocationChange() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locSeq++
	return s.locSeq
}

// applySample installs a fetched sample unless a newer search started in the
// meantime. Reports whether the sample was applied.
func (s *session) applySample(seq uint64, sample solar.Sample, loc location) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.locSeq {
		return false
	}
	s.sample = sample
	s.hasSample = true
	s.loc = &loc
	return true
}

// currentLocation returns the active location, if one has been set.
func (s *session) currentLocation() (location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc == nil {
		return location{}, false
	}
	return *s.loc, true
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// sessionRegistry tracks live sessions and drops those idle past the TTL.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	area     planner.AreaFunc
	ttl      time.Duration
}

func newSessionRegistry(area planner.AreaFunc, ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		area:     area,
		ttl:      ttl,
	}
}

func (r *sessionRegistry) create() *session {
	s := &session{
		id:       uuid.NewString(),
		store:    planner.NewStore(r.area),
		lastSeen: time.Now().UTC(),
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch(time.Now().UTC())
	}
	return s, ok
}

func (r *sessionRegistry) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// run sweeps expired sessions until the context is cancelled.
func (r *sessionRegistry) run(ctx context.Context) {
	t := time.NewTicker(r.ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.sweep(now)
		}
	}
}

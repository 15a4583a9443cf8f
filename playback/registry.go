package playback

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ElementID identifies one video element. The registry maps element
// identity to session state; it does not own the element's lifetime.
type ElementID string

// Registry tracks the single active session per element. Binding an element
// that already has a session destroys the old one first, so exactly one
// engine instance is ever attached to an element.
type Registry struct {
	mu       sync.Mutex
	sessions map[ElementID]*Session
	logger   zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[ElementID]*Session),
		logger:   logger,
	}
}

// Bind creates a session for the element, replacing any existing one.
func (r *Registry) Bind(id ElementID, playlistURL string, engine Engine, onStateChange func(State)) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bindLocked(id, playlistURL, engine, onStateChange)
}

func (r *Registry) bindLocked(id ElementID, playlistURL string, engine Engine, onStateChange func(State)) *Session {
	if old, ok := r.sessions[id]; ok {
		r.logger.Debug().Str("element", string(id)).Msg("destroying stale session before rebind")
		old.Destroy()
	}
	s := newSession(playlistURL, engine, onStateChange, r.logger)
	r.sessions[id] = s
	return s
}

// Get returns the active session for the element, if any.
func (r *Registry) Get(id ElementID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Destroy tears down and forgets the element's session.
func (r *Registry) Destroy(id ElementID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Destroy()
		delete(r.sessions, id)
	}
}

// DestroyAll tears down every session. Required before re-rendering a video
// list whose elements may be reused.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Destroy()
		delete(r.sessions, id)
	}
}

// ActiveCount reports how many sessions are currently bound.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Binding describes one element to bind during a bulk re-render.
type Binding struct {
	Element       ElementID
	PlaylistURL   string
	Engine        Engine
	OnStateChange func(State)
}

// BindAll destroys every existing session, then binds each element with a
// small incremental delay between initializations. The stagger is a soft
// throttle against engine-initialization bursts, not a correctness
// requirement; zero disables it. BindAll blocks for the duration of the
// stagger, so callers typically run it on its own goroutine.
func (r *Registry) BindAll(bindings []Binding, stagger time.Duration) []*Session {
	r.DestroyAll()

	sessions := make([]*Session, 0, len(bindings))
	for i, b := range bindings {
		if i > 0 && stagger > 0 {
			time.Sleep(stagger)
		}
		r.mu.Lock()
		sessions = append(sessions, r.bindLocked(b.Element, b.PlaylistURL, b.Engine, b.OnStateChange))
		r.mu.Unlock()
	}
	return sessions
}

package playback

import (
	"sync"

	"github.com/rs/zerolog"

	"vod-packager/pkg/hlsurl"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateRecovering State = "recovering"
	StateFailed     State = "failed"
	StateDestroyed  State = "destroyed"
)

// recoveryAction is one row of the fatal-error decision table. A nil attempt
// means the error is unrecoverable.
type recoveryAction struct {
	attempt        func(s *Session)
	failureMessage string
}

var recoveryTable = map[ErrorType]recoveryAction{
	NetworkError: {
		attempt:        (*Session).reloadAtPosition,
		failureMessage: "Network error while loading the video. Please try again.",
	},
	MediaError: {
		attempt:        (*Session).recoverMedia,
		failureMessage: "Playback error. The video could not be decoded.",
	},
	OtherError: {
		attempt:        nil,
		failureMessage: "Playback failed.",
	},
}

// Session drives playback for one video element. All engine callbacks funnel
// through it so that state transitions stay in one place.
type Session struct {
	mu             sync.Mutex
	engine         Engine
	state          State
	playlistURL    string
	basePath       string
	fragmentCache  map[string]string
	attempted      map[ErrorType]bool
	failureMessage string
	engineDown     bool
	onStateChange  func(State)
	logger         zerolog.Logger
}

func newSession(playlistURL string, engine Engine, onStateChange func(State), logger zerolog.Logger) *Session {
	s := &Session{
		engine:        engine,
		state:         StateLoading,
		playlistURL:   playlistURL,
		basePath:      hlsurl.BasePath(playlistURL),
		fragmentCache: make(map[string]string),
		attempted:     make(map[ErrorType]bool),
		onStateChange: onStateChange,
		logger:        logger.With().Str("playlist_url", playlistURL).Logger(),
	}
	s.notify()
	engine.LoadSource(playlistURL)
	return s
}

// ResolveFragmentURLs rewrites every fragment URL known right after manifest
// parse. This is the eager first interception point.
func (s *Session) ResolveFragmentURLs(urls []string) []string {
	resolved := make([]string, len(urls))
	for i, u := range urls {
		resolved[i] = s.resolve(u)
	}
	return resolved
}

// ResolveFragmentURL rewrites one fragment URL immediately before its
// network request, covering fragments discovered after the initial parse.
func (s *Session) ResolveFragmentURL(url string) string {
	return s.resolve(url)
}

// LoaderURL is the custom loading hook, catching any request path that
// bypassed the two other interception points. Resolution is idempotent, so
// a URL passing through all three hooks comes out the same.
func (s *Session) LoaderURL(url string) string {
	return s.resolve(url)
}

func (s *Session) resolve(url string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.fragmentCache[url]; ok {
		return cached
	}
	resolved := hlsurl.Resolve(url, s.basePath)
	s.fragmentCache[url] = resolved
	return resolved
}

// HandleError is the engine's error callback. Non-fatal errors are logged
// and playback continues; fatal errors get exactly one recovery attempt per
// error type before the session fails.
func (s *Session) HandleError(e EngineError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDestroyed || s.state == StateFailed {
		return
	}
	if !e.Fatal {
		s.logger.Debug().Str("type", string(e.Type)).Str("detail", e.Detail).Msg("non-fatal engine error")
		return
	}

	action, ok := recoveryTable[e.Type]
	if !ok {
		action = recoveryTable[OtherError]
	}

	if action.attempt == nil || s.attempted[e.Type] {
		s.logger.Error().Str("type", string(e.Type)).Str("detail", e.Detail).Msg("fatal engine error, giving up")
		s.failLocked(action.failureMessage)
		return
	}

	s.logger.Warn().Str("type", string(e.Type)).Str("detail", e.Detail).Msg("fatal engine error, attempting recovery")
	s.attempted[e.Type] = true
	s.setStateLocked(StateRecovering)
	action.attempt(s)
}

// FrameRendered is called on first frame availability; it clears the
// loading indicator.
func (s *Session) FrameRendered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading || s.state == StateRecovering {
		s.setStateLocked(StateReady)
	}
}

// Destroy tears down the underlying engine. It is mandatory before
// rebinding the element to a new source.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDestroyed {
		return
	}
	s.teardownEngineLocked()
	s.fragmentCache = make(map[string]string)
	s.setStateLocked(StateDestroyed)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FailureMessage is the human-readable text shown in place of the player
// once the session has failed.
func (s *Session) FailureMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failureMessage
}

func (s *Session) reloadAtPosition() {
	s.engine.StartLoad(s.engine.CurrentPosition())
}

func (s *Session) recoverMedia() {
	s.engine.RecoverMediaError()
}

func (s *Session) failLocked(message string) {
	s.failureMessage = message
	s.teardownEngineLocked()
	s.setStateLocked(StateFailed)
}

func (s *Session) teardownEngineLocked() {
	if s.engineDown {
		return
	}
	s.engineDown = true
	s.engine.Destroy()
}

func (s *Session) setStateLocked(state State) {
	s.state = state
	s.notify()
}

func (s *Session) notify() {
	if s.onStateChange != nil {
		s.onStateChange(s.state)
	}
}

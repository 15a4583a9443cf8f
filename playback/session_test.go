package playback

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeEngine struct {
	loadedSource      string
	startLoadCalls    []float64
	recoverMediaCalls int
	destroyCalls      int
	position          float64
}

func (e *fakeEngine) LoadSource(url string)    { e.loadedSource = url }
func (e *fakeEngine) CurrentPosition() float64 { return e.position }
func (e *fakeEngine) RecoverMediaError()       { e.recoverMediaCalls++ }
func (e *fakeEngine) Destroy()                 { e.destroyCalls++ }

func (e *fakeEngine) StartLoad(startPosition float64) {
	e.startLoadCalls = append(e.startLoadCalls, startPosition)
}

const playlist = "https://h/media/published/video_1/playlist.m3u8"

func newTestSession(engine Engine) *Session {
	return newSession(playlist, engine, nil, zerolog.Nop())
}

func TestSessionResolvesFragmentsAtAllHooks(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	assert.Equal(t, playlist, engine.loadedSource)

	want := "https://h/media/published/video_1/000.ts"

	eager := s.ResolveFragmentURLs([]string{"000.ts", "/001.ts"})
	assert.Equal(t, []string{want, "https://h/media/published/video_1/001.ts"}, eager)

	// A URL already resolved by the first hook passes through the other
	// two unchanged.
	assert.Equal(t, want, s.ResolveFragmentURL(eager[0]))
	assert.Equal(t, want, s.LoaderURL(eager[0]))

	// Same-origin wrong-path URLs produced by an older pipeline get
	// repaired on the way to the network.
	assert.Equal(t, want, s.ResolveFragmentURL("https://h/old-location/000.ts"))
}

func TestSessionNetworkErrorRecovery(t *testing.T) {
	engine := &fakeEngine{position: 42.5}
	s := newTestSession(engine)

	s.HandleError(EngineError{Type: NetworkError, Fatal: true})
	assert.Equal(t, StateRecovering, s.State())
	assert.Equal(t, []float64{42.5}, engine.startLoadCalls)

	s.FrameRendered()
	assert.Equal(t, StateReady, s.State())
}

func TestSessionNetworkErrorSecondFailureIsTerminal(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	s.HandleError(EngineError{Type: NetworkError, Fatal: true})
	s.HandleError(EngineError{Type: NetworkError, Fatal: true})

	assert.Equal(t, StateFailed, s.State())
	assert.Contains(t, s.FailureMessage(), "Network error")
	assert.Equal(t, 1, engine.destroyCalls)
	assert.Len(t, engine.startLoadCalls, 1)
}

func TestSessionMediaErrorRecovery(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	s.HandleError(EngineError{Type: MediaError, Fatal: true})
	assert.Equal(t, StateRecovering, s.State())
	assert.Equal(t, 1, engine.recoverMediaCalls)

	s.HandleError(EngineError{Type: MediaError, Fatal: true})
	assert.Equal(t, StateFailed, s.State())
	assert.Contains(t, s.FailureMessage(), "Playback error")
}

func TestSessionOtherFatalErrorDestroysImmediately(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	s.HandleError(EngineError{Type: OtherError, Fatal: true})
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, "Playback failed.", s.FailureMessage())
	assert.Equal(t, 1, engine.destroyCalls)
}

func TestSessionNonFatalErrorsAreIgnored(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	s.HandleError(EngineError{Type: NetworkError, Fatal: false})
	s.HandleError(EngineError{Type: MediaError, Fatal: false})

	assert.Equal(t, StateLoading, s.State())
	assert.Empty(t, engine.startLoadCalls)
	assert.Zero(t, engine.recoverMediaCalls)
}

func TestSessionLoadingIndicatorLifecycle(t *testing.T) {
	engine := &fakeEngine{}
	var states []State
	s := newSession(playlist, engine, func(st State) { states = append(states, st) }, zerolog.Nop())

	s.FrameRendered()
	s.Destroy()

	assert.Equal(t, []State{StateLoading, StateReady, StateDestroyed}, states)
}

func TestSessionDestroyIsIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestSession(engine)

	s.Destroy()
	s.Destroy()

	assert.Equal(t, StateDestroyed, s.State())
	assert.Equal(t, 1, engine.destroyCalls)
}

// Package playback manages adaptive-streaming sessions on the client side:
// one session per bound video element, fragment URL resolution at every
// point the engine may request one, and a table-driven recovery path for
// the engine's fatal errors.
package playback

// ErrorType classifies the engine's error signals.
type ErrorType string

const (
	NetworkError ErrorType = "network"
	MediaError   ErrorType = "media"
	OtherError   ErrorType = "other"
)

// EngineError is one error event surfaced by the underlying engine.
type EngineError struct {
	Type   ErrorType
	Fatal  bool
	Detail string
}

// Engine abstracts the adaptive-streaming engine attached to one video
// element. Implementations wrap whatever playback runtime is in use; the
// session only needs load, the two engine-specific recovery actions, and
// teardown.
type Engine interface {
	LoadSource(url string)
	// CurrentPosition reports the playhead in seconds, used to resume
	// after a network recovery.
	CurrentPosition() float64
	// StartLoad restarts fragment loading from the given position.
	StartLoad(startPosition float64)
	// RecoverMediaError re-initializes the decode pipeline without a full
	// reload.
	RecoverMediaError()
	Destroy()
}

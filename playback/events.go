package playback

import "time"

// Listener receives session-level events from an orchestrator. Multiple
// listeners may subscribe; the orchestrator fans out to all of them so
// persistence and analytics do not need to know about each other.
type Listener interface {
	OnProgress(contentID string, percent float64)
	OnContentComplete(contentID string)
	OnSessionComplete(sessionID string)
	OnContentChange(contentID string)
}

// Emitter is handed to a renderer strategy when its item becomes active.
// Signals are level-state, at-least-once: a consumer must treat a repeated
// Progress value as idempotent. Signals from a no-longer-active item are
// silently discarded by the orchestrator.
type Emitter interface {
	Progress(percent float64)
	Complete()
}

// Scheduler abstracts the settle-delay timer so tests can drive it by hand.
// The returned cancel func must be safe to call after the task has fired.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the wall-clock Scheduler used in production.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// NopListener lets callers subscribe partially by embedding it.
type NopListener struct{}

func (NopListener) OnProgress(string, float64) {}
func (NopListener) OnContentComplete(string)   {}
func (NopListener) OnSessionComplete(string)   {}
func (NopListener) OnContentChange(string)     {}

package playback

import "errors"

// Status is the lifecycle of a playback Controller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusEnded   Status = "ended"
	StatusErrored Status = "errored"
)

// MediaInfo is what a successful load resolves to.
type MediaInfo struct {
	Duration float64 // seconds
	Chapters []Chapter
}

// State is a point-in-time snapshot of a controller, safe to hand to DTOs.
type State struct {
	Status            Status    `json:"status"`
	Source            string    `json:"source,omitempty"`
	CurrentTime       float64   `json:"current_time"`
	Duration          float64   `json:"duration"`
	Percent           float64   `json:"percent"`
	Volume            float64   `json:"volume"`
	Muted             bool      `json:"muted"`
	Rate              float64   `json:"rate"`
	Looping           bool      `json:"looping"`
	ChapterIndex      int       `json:"chapter_index"`
	Chapters          []Chapter `json:"chapters,omitempty"`
	HasStartedPlaying bool      `json:"has_started_playing"`
	ListenTimeSeconds float64   `json:"listen_time_seconds"`
}

// Controller is the state machine for one active piece of time-based
// content. It is transient: a new controller is mounted whenever the active
// item changes, so nothing here is persisted by the engine itself.
//
// Load resolution is deferred (Load -> CompleteLoad / FailLoad) because the
// media source is fetched by a collaborator; a slow load may well resolve
// after the learner has already navigated away.
type Controller struct {
	status Status
	source string

	currentTime float64
	duration    float64

	volume  float64
	muted   bool
	rate    float64
	looping bool

	chapters     []Chapter
	chapterIndex int

	hasStarted      bool
	listenTime      float64
	completeEmitted bool
	lastErr         error

	emit Emitter
}

func NewController(emit Emitter) *Controller {
	return &Controller{
		status: StatusIdle,
		volume: 1,
		rate:   1,
		emit:   emit,
	}
}

// Unmount detaches the controller. No field is written here: the settle
// timer unmounts under the orchestrator lock while a command goroutine may
// still be driving this controller, and any signal emitted after the swap is
// dropped by the orchestrator's token guard anyway.
func (c *Controller) Unmount() {}

// Load begins resolving a media source. Valid from idle and errored (the
// explicit retry path); the controller stays in loading until CompleteLoad
// or FailLoad is called.
func (c *Controller) Load(source string) error {
	if c.status != StatusIdle && c.status != StatusErrored {
		return &InvalidStateError{Op: "load", State: c.status}
	}
	c.status = StatusLoading
	c.source = source
	c.lastErr = nil
	c.currentTime = 0
	c.chapterIndex = 0
	c.completeEmitted = false
	return nil
}

// CompleteLoad resolves a pending load with the media metadata.
func (c *Controller) CompleteLoad(info MediaInfo) error {
	if c.status != StatusLoading {
		return &InvalidStateError{Op: "complete load", State: c.status}
	}
	c.status = StatusReady
	c.duration = info.Duration
	c.chapters = info.Chapters
	c.chapterIndex = c.chapterFor(0)
	return nil
}

// FailLoad resolves a pending load with an error. The controller stays
// errored until an explicit Load retry; it never retries on its own.
func (c *Controller) FailLoad(err error) error {
	if c.status != StatusLoading {
		return &InvalidStateError{Op: "fail load", State: c.status}
	}
	c.status = StatusErrored
	c.lastErr = &LoadError{Source: c.source, Retryable: true, Err: err}
	return nil
}

// Err returns the load/playback failure the controller is stuck on, if any.
func (c *Controller) Err() error {
	return c.lastErr
}

func (c *Controller) Play() error {
	if c.status != StatusReady && c.status != StatusPaused {
		return &InvalidStateError{Op: "play", State: c.status}
	}
	c.status = StatusPlaying
	c.hasStarted = true
	return nil
}

func (c *Controller) Pause() error {
	if c.status != StatusPlaying {
		return &InvalidStateError{Op: "pause", State: c.status}
	}
	c.status = StatusPaused
	return nil
}

// Seek clamps into [0, duration] and recomputes the chapter index. Seeking
// out of the ended state re-arms it: the controller drops back to paused and
// a later natural end emits completion again. An idle seek is allowed and
// clamps to zero; only loading and errored reject it.
func (c *Controller) Seek(t float64) error {
	switch c.status {
	case StatusLoading, StatusErrored:
		return &InvalidStateError{Op: "seek", State: c.status}
	}
	c.currentTime = clamp(t, 0, c.duration)
	c.chapterIndex = c.chapterFor(c.currentTime)
	if c.status == StatusEnded && c.currentTime < c.duration {
		c.status = StatusPaused
		c.completeEmitted = false
	}
	c.emitProgress()
	return nil
}

func (c *Controller) SetVolume(v float64) error {
	if c.status == StatusErrored {
		return &InvalidStateError{Op: "set volume", State: c.status}
	}
	c.volume = clamp(v, 0, 1)
	return nil
}

func (c *Controller) ToggleMute() error {
	if c.status == StatusErrored {
		return &InvalidStateError{Op: "toggle mute", State: c.status}
	}
	c.muted = !c.muted
	return nil
}

func (c *Controller) SetSpeed(rate float64) error {
	if c.status == StatusErrored {
		return &InvalidStateError{Op: "set speed", State: c.status}
	}
	if rate <= 0 {
		return errors.New("playback: rate must be positive")
	}
	c.rate = rate
	return nil
}

func (c *Controller) ToggleLoop() error {
	if c.status == StatusErrored {
		return &InvalidStateError{Op: "toggle loop", State: c.status}
	}
	c.looping = !c.looping
	return nil
}

// SkipChapter moves to the previous (dir < 0) or next (dir > 0) chapter
// start, clamped at the first and last chapter. No wraparound.
func (c *Controller) SkipChapter(dir int) error {
	switch c.status {
	case StatusLoading, StatusErrored, StatusIdle:
		return &InvalidStateError{Op: "skip chapter", State: c.status}
	}
	if len(c.chapters) == 0 {
		return nil
	}
	target := c.chapterIndex
	if dir > 0 {
		target++
	} else {
		target--
	}
	if target < 0 {
		target = 0
	}
	if target > len(c.chapters)-1 {
		target = len(c.chapters) - 1
	}
	return c.Seek(c.chapters[target].StartTime)
}

// Advance moves the playback clock forward by dt wall-clock seconds while
// playing. The media position advances at the current rate; listen time
// accumulates in wall seconds. Reaching the natural end either loops back to
// zero or transitions to ended, emitting completion exactly once per
// play-through.
func (c *Controller) Advance(dt float64) error {
	if c.status != StatusPlaying {
		return &InvalidStateError{Op: "advance", State: c.status}
	}
	if dt < 0 {
		return errors.New("playback: advance delta must be non-negative")
	}
	c.listenTime += dt
	c.currentTime = clamp(c.currentTime+dt*c.rate, 0, c.duration)
	c.chapterIndex = c.chapterFor(c.currentTime)

	if c.duration > 0 && c.currentTime >= c.duration {
		if c.looping {
			c.currentTime = 0
			c.chapterIndex = c.chapterFor(0)
			c.emitProgress()
			return nil
		}
		c.status = StatusEnded
		c.emitProgress()
		if !c.completeEmitted {
			c.completeEmitted = true
			if c.emit != nil {
				c.emit.Complete()
			}
		}
		return nil
	}
	c.emitProgress()
	return nil
}

// Percent is the level-state completion percentage in [0, 100].
func (c *Controller) Percent() float64 {
	if c.duration <= 0 {
		return 0
	}
	return clamp(c.currentTime/c.duration*100, 0, 100)
}

func (c *Controller) Status() Status       { return c.status }
func (c *Controller) CurrentTime() float64 { return c.currentTime }
func (c *Controller) Duration() float64    { return c.duration }
func (c *Controller) ChapterIndex() int    { return c.chapterIndex }
func (c *Controller) Looping() bool        { return c.looping }
func (c *Controller) ListenTime() float64  { return c.listenTime }
func (c *Controller) HasStarted() bool     { return c.hasStarted }

func (c *Controller) Snapshot() State {
	return State{
		Status:            c.status,
		Source:            c.source,
		CurrentTime:       c.currentTime,
		Duration:          c.duration,
		Percent:           c.Percent(),
		Volume:            c.volume,
		Muted:             c.muted,
		Rate:              c.rate,
		Looping:           c.looping,
		ChapterIndex:      c.chapterIndex,
		Chapters:          c.chapters,
		HasStartedPlaying: c.hasStarted,
		ListenTimeSeconds: c.listenTime,
	}
}

func (c *Controller) emitProgress() {
	if c.emit != nil {
		c.emit.Progress(c.Percent())
	}
}

// chapterFor returns the highest chapter index whose start is <= t, or 0 if
// no chapter starts that early.
func (c *Controller) chapterFor(t float64) int {
	idx := 0
	for i, ch := range c.chapters {
		if ch.StartTime <= t {
			idx = i
		}
	}
	return idx
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

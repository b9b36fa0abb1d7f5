package playback

import "time"

// Options configures an orchestrator. Only TrackProgress, AutoPlay,
// SettleDelay and RequiredOnly affect engine behavior; the rest are
// presentation toggles passed through to clients unchanged.
type Options struct {
	AutoPlay          bool          `json:"auto_play"`
	TrackProgress     bool          `json:"track_progress"`
	AllowNotes        bool          `json:"allow_notes"`
	AllowBookmarks    bool          `json:"allow_bookmarks"`
	ShowPrerequisites bool          `json:"show_prerequisites"`
	EnableComments    bool          `json:"enable_comments"`
	SettleDelay       time.Duration `json:"-"`
	RequiredOnly      bool          `json:"-"`
}

// DefaultSettleDelay gives the learner visual confirmation of a completed
// item before auto-advancing.
const DefaultSettleDelay = 1500 * time.Millisecond

func DefaultOptions() Options {
	return Options{
		TrackProgress: true,
		SettleDelay:   DefaultSettleDelay,
	}
}

package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureEmitter struct {
	progress  []float64
	completes int
}

func (e *captureEmitter) Progress(p float64) { e.progress = append(e.progress, p) }
func (e *captureEmitter) Complete()          { e.completes++ }

func readyController(t *testing.T, duration float64, chapters []Chapter) (*Controller, *captureEmitter) {
	t.Helper()
	em := &captureEmitter{}
	c := NewController(em)
	require.NoError(t, c.Load("s3://media/track.mp3"))
	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: duration, Chapters: chapters}))
	return c, em
}

func TestControllerLoadLifecycle(t *testing.T) {
	em := &captureEmitter{}
	c := NewController(em)

	assert.Equal(t, StatusIdle, c.Status())
	require.NoError(t, c.Load("src"))
	assert.Equal(t, StatusLoading, c.Status())

	// Play is not valid before the load resolves.
	assert.Error(t, c.Play())

	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: 120}))
	assert.Equal(t, StatusReady, c.Status())
	assert.Equal(t, 120.0, c.Duration())
}

func TestControllerLoadFailureAndRetry(t *testing.T) {
	em := &captureEmitter{}
	c := NewController(em)

	require.NoError(t, c.Load("src"))
	require.NoError(t, c.FailLoad(errors.New("connection reset")))
	assert.Equal(t, StatusErrored, c.Status())

	var loadErr *LoadError
	require.ErrorAs(t, c.Err(), &loadErr)
	assert.True(t, loadErr.Retryable)

	// Nothing but an explicit retry leaves the errored state.
	assert.Error(t, c.Play())
	assert.Error(t, c.Seek(10))
	assert.Error(t, c.SetVolume(0.5))

	require.NoError(t, c.Load("src"))
	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: 60}))
	assert.Equal(t, StatusReady, c.Status())
	assert.NoError(t, c.Err())
}

func TestControllerPlayPause(t *testing.T) {
	c, _ := readyController(t, 100, nil)

	assert.False(t, c.HasStarted())
	require.NoError(t, c.Play())
	assert.Equal(t, StatusPlaying, c.Status())
	assert.True(t, c.HasStarted())

	assert.Error(t, c.Play(), "play is only valid from ready or paused")

	require.NoError(t, c.Pause())
	assert.Equal(t, StatusPaused, c.Status())
	assert.Error(t, c.Pause())

	require.NoError(t, c.Play())
	assert.Equal(t, StatusPlaying, c.Status())
}

func TestControllerSeekClamps(t *testing.T) {
	c, _ := readyController(t, 100, nil)

	tests := []struct {
		name string
		seek float64
		want float64
	}{
		{"negative clamps to zero", -5, 0},
		{"past end clamps to duration", 500, 100},
		{"in range passes through", 42.5, 42.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, c.Seek(tc.seek))
			assert.Equal(t, tc.want, c.CurrentTime())
		})
	}
}

func TestControllerSeekIdle(t *testing.T) {
	em := &captureEmitter{}
	c := NewController(em)

	// No media yet, so any target clamps to zero; only loading and errored
	// reject a seek.
	require.NoError(t, c.Seek(30))
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 0.0, c.CurrentTime())

	require.NoError(t, c.Load("src"))
	assert.Error(t, c.Seek(30), "seek mid-load has no duration to clamp against")
}

func TestControllerChapterIndex(t *testing.T) {
	chapters := []Chapter{
		{Title: "intro", StartTime: 0},
		{Title: "middle", StartTime: 30},
		{Title: "outro", StartTime: 80},
	}
	c, _ := readyController(t, 100, chapters)

	tests := []struct {
		seek float64
		want int
	}{
		{0, 0},
		{29.9, 0},
		{30, 1},
		{79, 1},
		{80, 2},
		{100, 2},
	}
	for _, tc := range tests {
		require.NoError(t, c.Seek(tc.seek))
		assert.Equal(t, tc.want, c.ChapterIndex(), "seek(%v)", tc.seek)
	}
}

func TestControllerSkipChapterClamped(t *testing.T) {
	chapters := []Chapter{{StartTime: 0}, {StartTime: 30}, {StartTime: 80}}
	c, _ := readyController(t, 100, chapters)

	require.NoError(t, c.SkipChapter(-1))
	assert.Equal(t, 0, c.ChapterIndex(), "no wraparound below the first chapter")

	require.NoError(t, c.SkipChapter(1))
	assert.Equal(t, 1, c.ChapterIndex())
	assert.Equal(t, 30.0, c.CurrentTime())

	require.NoError(t, c.SkipChapter(1))
	require.NoError(t, c.SkipChapter(1))
	assert.Equal(t, 2, c.ChapterIndex(), "no wraparound past the last chapter")
}

func TestControllerAdvanceEmitsProgressAndCompletesOnce(t *testing.T) {
	c, em := readyController(t, 10, nil)
	require.NoError(t, c.Play())

	for i := 0; i < 9; i++ {
		require.NoError(t, c.Advance(1))
	}
	assert.Equal(t, 0, em.completes)
	assert.InDelta(t, 90, em.progress[len(em.progress)-1], 0.01)

	require.NoError(t, c.Advance(1))
	assert.Equal(t, StatusEnded, c.Status())
	assert.Equal(t, 1, em.completes)
	assert.Equal(t, 100.0, em.progress[len(em.progress)-1])

	// Ended is terminal until an explicit restart.
	assert.Error(t, c.Advance(1))
	assert.Equal(t, 1, em.completes)
}

func TestControllerRestartAfterEnded(t *testing.T) {
	c, em := readyController(t, 10, nil)
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(10))
	require.Equal(t, StatusEnded, c.Status())

	// seek(0) + play restarts, and a second natural end completes again.
	require.NoError(t, c.Seek(0))
	assert.Equal(t, StatusPaused, c.Status())
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(10))
	assert.Equal(t, 2, em.completes)
}

func TestControllerLooping(t *testing.T) {
	c, em := readyController(t, 10, nil)
	require.NoError(t, c.ToggleLoop())
	require.NoError(t, c.Play())

	require.NoError(t, c.Advance(10))
	assert.Equal(t, StatusPlaying, c.Status(), "looping re-enters playback at zero")
	assert.Equal(t, 0.0, c.CurrentTime())
	assert.Equal(t, 0, em.completes, "looping never emits completion")
}

func TestControllerAdvanceHonorsRate(t *testing.T) {
	c, _ := readyController(t, 100, nil)
	require.NoError(t, c.SetSpeed(2))
	require.NoError(t, c.Play())

	require.NoError(t, c.Advance(5))
	assert.Equal(t, 10.0, c.CurrentTime(), "media position advances at the playback rate")
	assert.Equal(t, 5.0, c.ListenTime(), "listen time accumulates wall seconds")
}

func TestControllerVolumeAndMute(t *testing.T) {
	c, _ := readyController(t, 100, nil)

	require.NoError(t, c.SetVolume(1.7))
	assert.Equal(t, 1.0, c.Snapshot().Volume)
	require.NoError(t, c.SetVolume(-0.2))
	assert.Equal(t, 0.0, c.Snapshot().Volume)

	status := c.Status()
	require.NoError(t, c.ToggleMute())
	assert.True(t, c.Snapshot().Muted)
	assert.Equal(t, status, c.Status(), "setters never change the play state")

	assert.Error(t, c.SetSpeed(0))
}

func TestControllerUnmountSilences(t *testing.T) {
	c, em := readyController(t, 10, nil)
	require.NoError(t, c.Play())

	c.Unmount()
	before := len(em.progress)
	require.NoError(t, c.Advance(10))
	assert.Equal(t, before, len(em.progress), "an unmounted controller emits nothing")
	assert.Equal(t, 0, em.completes)
}

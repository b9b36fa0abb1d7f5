package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues settle tasks so tests decide when time passes.
type manualScheduler struct {
	tasks []func()
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	s.tasks = append(s.tasks, fn)
	idx := len(s.tasks) - 1
	return func() { s.tasks[idx] = nil }
}

// fire runs every pending task that was not cancelled.
func (s *manualScheduler) fire() {
	tasks := s.tasks
	s.tasks = nil
	for _, fn := range tasks {
		if fn != nil {
			fn()
		}
	}
}

type recordingListener struct {
	progress  map[string][]float64
	completed []string
	sessions  []string
	changes   []string
}

func newRecordingListener() *recordingListener {
	return &recordingListener{progress: map[string][]float64{}}
}

func (l *recordingListener) OnProgress(id string, p float64) { l.progress[id] = append(l.progress[id], p) }
func (l *recordingListener) OnContentComplete(id string)     { l.completed = append(l.completed, id) }
func (l *recordingListener) OnSessionComplete(id string)     { l.sessions = append(l.sessions, id) }
func (l *recordingListener) OnContentChange(id string)       { l.changes = append(l.changes, id) }

func sessionItems() []Item {
	return []Item{
		{ID: "v1", SessionID: "s1", Type: ContentVideo, Order: 1, Free: true},
		{ID: "d1", SessionID: "s1", Type: ContentDocument, Order: 2, Free: true},
		{ID: "q1", SessionID: "s1", Type: ContentQuiz, Order: 3, Free: true},
	}
}

func newTestOrchestrator(t *testing.T, items []Item, opts Options) (*Orchestrator, *manualScheduler, *recordingListener) {
	t.Helper()
	sched := &manualScheduler{}
	o := NewOrchestrator("s1", items, NewDefaultRegistry(), opts, sched)
	l := newRecordingListener()
	o.Subscribe(l)
	return o, sched, l
}

func TestOrchestratorStartSelectsFirstByOrder(t *testing.T) {
	o, _, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())

	require.NoError(t, o.Start())
	assert.Equal(t, SessionInProgress, o.State())

	cur, ok := o.CurrentItem()
	require.True(t, ok)
	assert.Equal(t, "v1", cur.ID)
	assert.Equal(t, []string{"v1"}, l.changes)
	assert.Equal(t, 0.0, o.Percentage())
	assert.NotNil(t, o.Controller(), "a video item mounts a playback controller")
}

// Session [v1(VIDEO), d1(DOCUMENT), q1(QUIZ)], all free, no prior record.
func TestOrchestratorScenarioProgression(t *testing.T) {
	o, sched, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	c := o.Controller()
	require.NotNil(t, c)
	require.NoError(t, c.Load("v1.mp4"))
	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: 10}))
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(10))

	assert.Equal(t, []string{"v1"}, l.completed)
	assert.InDelta(t, 33.33, o.Percentage(), 0.01)

	// Auto-advance happens only after the settle delay.
	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID)
	sched.fire()
	cur, _ = o.CurrentItem()
	assert.Equal(t, "d1", cur.ID)
	assert.Nil(t, o.Controller(), "a document mounts no playback controller")

	require.NoError(t, o.MarkCurrentComplete())
	assert.InDelta(t, 66.66, o.Percentage(), 0.01)
	sched.fire()
	cur, _ = o.CurrentItem()
	assert.Equal(t, "q1", cur.ID)

	// Completing the last item finishes the session and navigates no further.
	require.NoError(t, o.MarkCurrentComplete())
	assert.Equal(t, 100.0, o.Percentage())
	assert.Equal(t, SessionCompleted, o.State())
	assert.Equal(t, []string{"s1"}, l.sessions)
	sched.fire()
	cur, _ = o.CurrentItem()
	assert.Equal(t, "q1", cur.ID)
}

func TestOrchestratorOutOfOrderCompletionFinishesSession(t *testing.T) {
	o, sched, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	// The learner skips to the end first, then fills in the gaps; the final
	// completion lands mid-session where forward navigation is still open.
	require.NoError(t, o.SelectContent("q1"))
	require.NoError(t, o.MarkCurrentComplete())
	require.NoError(t, o.SelectContent("v1"))
	require.NoError(t, o.MarkCurrentComplete())
	require.NoError(t, o.SelectContent("d1"))
	require.NoError(t, o.MarkCurrentComplete())

	assert.Equal(t, 100.0, o.Percentage())
	assert.Equal(t, SessionCompleted, o.State())
	assert.Equal(t, []string{"s1"}, l.sessions)

	// Completion does not swallow the pending auto-advance.
	sched.fire()
	cur, _ := o.CurrentItem()
	assert.Equal(t, "q1", cur.ID)
}

func TestOrchestratorManualNavigationOverridesAutoAdvance(t *testing.T) {
	o, sched, _ := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	require.NoError(t, o.MarkCurrentComplete())

	// The learner jumps elsewhere before the settle timer fires.
	require.NoError(t, o.SelectContent("q1"))
	sched.fire()

	cur, _ := o.CurrentItem()
	assert.Equal(t, "q1", cur.ID, "a pending auto-advance never overrides manual navigation")
}

func TestOrchestratorDuplicateCompletionIsQuiet(t *testing.T) {
	o, sched, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	require.NoError(t, o.MarkCurrentComplete())
	sched.fire()
	require.NoError(t, o.Previous())

	// Completing v1 again: no event, no percentage change, no re-advance.
	require.NoError(t, o.MarkCurrentComplete())
	assert.Equal(t, []string{"v1"}, l.completed)
	assert.InDelta(t, 33.33, o.Percentage(), 0.01)
	assert.Empty(t, sched.tasks)
}

func TestOrchestratorStaleCallbackGuard(t *testing.T) {
	o, sched, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	// Item v1 is active and loading; the learner navigates to d1 before the
	// load resolves.
	a := o.Controller()
	require.NotNil(t, a)
	require.NoError(t, a.Load("v1.mp4"))
	require.NoError(t, o.SelectContent("d1"))

	// v1's load resolves late and even plays through; nothing belonging to
	// d1 may be mutated.
	require.NoError(t, a.CompleteLoad(MediaInfo{Duration: 5}))
	require.NoError(t, a.Play())
	require.NoError(t, a.Advance(5))

	cur, _ := o.CurrentItem()
	assert.Equal(t, "d1", cur.ID)
	assert.Empty(t, l.completed, "a stale completion is silently discarded")
	assert.Empty(t, l.progress["v1"], "stale progress is silently discarded")
	assert.Equal(t, 0.0, o.Percentage())
	sched.fire()
	cur, _ = o.CurrentItem()
	assert.Equal(t, "d1", cur.ID)
}

func TestOrchestratorLateCommandsAfterAutoAdvance(t *testing.T) {
	o, sched, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	c := o.Controller()
	require.NotNil(t, c)
	require.NoError(t, c.Load("v1.mp4"))
	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: 10}))
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(10))
	sched.fire()

	cur, _ := o.CurrentItem()
	require.Equal(t, "d1", cur.ID)
	progressBefore := len(l.progress["v1"])

	// A caller still holding the detached controller replays it to the end;
	// every signal it emits is stale and must change nothing.
	require.NoError(t, c.Seek(2))
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(8))

	assert.Equal(t, []string{"v1"}, l.completed, "no duplicate completion from a detached controller")
	assert.Len(t, l.progress["v1"], progressBefore)
	assert.InDelta(t, 33.33, o.Percentage(), 0.01)
}

func TestOrchestratorNavigationMiss(t *testing.T) {
	o, _, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	err := o.SelectContent("ghost")
	assert.ErrorIs(t, err, ErrContentNotFound)

	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID, "a navigation miss is a no-op")
	assert.Equal(t, []string{"v1"}, l.changes)
}

func TestOrchestratorBoundaryNavigation(t *testing.T) {
	o, _, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	require.NoError(t, o.Previous())
	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID)

	require.NoError(t, o.SelectContent("q1"))
	require.NoError(t, o.Next())
	cur, _ = o.CurrentItem()
	assert.Equal(t, "q1", cur.ID)

	assert.Equal(t, []string{"v1", "q1"}, l.changes, "boundary no-ops fire no content change")
}

func TestOrchestratorResume(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	o.Resume([]string{"v1"}, "d1")
	require.NoError(t, o.Start())

	cur, _ := o.CurrentItem()
	assert.Equal(t, "d1", cur.ID)
	assert.InDelta(t, 33.33, o.Percentage(), 0.01)
	assert.True(t, o.IsComplete("v1"))
}

func TestOrchestratorResumeFullyCompleted(t *testing.T) {
	o, _, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	o.Resume([]string{"v1", "d1", "q1"}, "q1")
	require.NoError(t, o.Start())

	assert.Equal(t, SessionCompleted, o.State())
	assert.Empty(t, l.sessions, "resuming a finished session re-fires no completion event")
}

func TestOrchestratorResumeMissingCurrentFallsBack(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	o.Resume(nil, "removed-item")
	require.NoError(t, o.Start())

	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID)
}

func TestOrchestratorTrackProgressDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.TrackProgress = false
	o, sched, l := newTestOrchestrator(t, sessionItems(), opts)
	require.NoError(t, o.Start())

	require.NoError(t, o.MarkCurrentComplete())
	assert.Equal(t, 0.0, o.Percentage())
	assert.Empty(t, l.completed)
	sched.fire()
	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID, "no auto-advance without progress tracking")
}

func TestOrchestratorRestartKeepsProgress(t *testing.T) {
	o, sched, _ := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	require.NoError(t, o.MarkCurrentComplete())
	sched.fire()
	require.NoError(t, o.Restart())

	cur, _ := o.CurrentItem()
	assert.Equal(t, "v1", cur.ID)
	assert.InDelta(t, 33.33, o.Percentage(), 0.01, "restart is navigation, not a progress reset")
}

func TestOrchestratorStartEmpty(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, nil, DefaultOptions())
	assert.Error(t, o.Start())
}

func TestOrchestratorUnsupportedTypeStaysNavigable(t *testing.T) {
	items := []Item{
		{ID: "a", SessionID: "s1", Type: ContentVideo, Order: 1},
		{ID: "weird", SessionID: "s1", Type: ContentType("HOLOGRAM"), Order: 2},
		{ID: "b", SessionID: "s1", Type: ContentDocument, Order: 3},
	}
	o, _, _ := newTestOrchestrator(t, items, DefaultOptions())
	require.NoError(t, o.Start())

	require.NoError(t, o.SelectContent("weird"))
	assert.Nil(t, o.Controller())

	require.NoError(t, o.Next())
	cur, _ := o.CurrentItem()
	assert.Equal(t, "b", cur.ID, "the session stays navigable past unsupported content")
}

func TestOrchestratorTeardownDropsLateCallbacks(t *testing.T) {
	o, _, l := newTestOrchestrator(t, sessionItems(), DefaultOptions())
	require.NoError(t, o.Start())

	c := o.Controller()
	require.NotNil(t, c)
	require.NoError(t, c.Load("v1.mp4"))
	o.Teardown()

	require.NoError(t, c.CompleteLoad(MediaInfo{Duration: 3}))
	require.NoError(t, c.Play())
	require.NoError(t, c.Advance(3))

	assert.Empty(t, l.completed)
	assert.Equal(t, 0.0, o.Percentage())
}

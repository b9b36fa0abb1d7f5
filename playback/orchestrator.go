package playback

import (
	"errors"
	"sync"
)

// SessionState is the session-level lifecycle.
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
)

// Orchestrator ties navigator, tracker and registry together behind the
// single external contract: select content, mark complete, report progress,
// navigate. It owns the auto-advance settle timer and the activation token
// that guards against stale callbacks from items the learner has already
// left.
//
// Listener dispatch happens outside the internal lock, so listeners are free
// to call back into the orchestrator.
type Orchestrator struct {
	mu sync.Mutex

	sessionID string
	opts      Options
	nav       *Navigator
	tracker   *Tracker
	registry  *Registry
	sched     Scheduler

	listeners []Listener
	pending   []pendingEvent

	state        SessionState
	token        uint64
	handle       Handle
	controller   *Controller
	cancelSettle func()
	resumeID     string
}

type eventKind int

const (
	evProgress eventKind = iota
	evContentComplete
	evSessionComplete
	evContentChange
)

type pendingEvent struct {
	kind      eventKind
	contentID string
	percent   float64
}

func NewOrchestrator(sessionID string, items []Item, registry *Registry, opts Options, sched Scheduler) *Orchestrator {
	if sched == nil {
		sched = NewTimerScheduler()
	}
	return &Orchestrator{
		sessionID: sessionID,
		opts:      opts,
		nav:       NewNavigator(items),
		tracker:   NewTracker(items, opts.RequiredOnly),
		registry:  registry,
		sched:     sched,
		state:     SessionNotStarted,
	}
}

// Subscribe adds a listener. Subscribers are independent; persistence and
// analytics both attach here without the orchestrator knowing either.
func (o *Orchestrator) Subscribe(l Listener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, l)
}

// Resume seeds completion state and the last current item from a persisted
// progress record. Must be called before Start.
func (o *Orchestrator) Resume(completedIDs []string, currentID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tracker.Seed(completedIDs)
	o.resumeID = currentID
}

// Start activates the session: the resumed item, or the first item by
// ascending order, becomes current and its strategy is mounted.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	if o.state != SessionNotStarted {
		o.mu.Unlock()
		return errors.New("playback: session already started")
	}
	if o.nav.Len() == 0 {
		o.mu.Unlock()
		return errors.New("playback: session has no content")
	}
	o.state = SessionInProgress
	if o.tracker.IsSessionComplete() {
		// Resumed a fully completed session; no completion event re-fires.
		o.state = SessionCompleted
	}
	if o.resumeID != "" {
		if err := o.nav.GoTo(o.resumeID); err != nil {
			// The resumed item no longer exists; fall back to the start.
			o.resumeID = ""
		}
	}
	err := o.mountCurrentLocked()
	o.unlockAndDispatch()
	return err
}

// SelectContent jumps to an arbitrary item. Manual navigation always
// overrides a pending auto-advance and is never gated on the current item
// being complete; learners may skip ahead.
func (o *Orchestrator) SelectContent(id string) error {
	o.mu.Lock()
	o.cancelSettleLocked()
	err := o.nav.GoTo(id)
	if err == nil {
		err = o.mountCurrentLocked()
	}
	o.unlockAndDispatch()
	return err
}

// Next moves forward one item; a no-op at the last item.
func (o *Orchestrator) Next() error {
	o.mu.Lock()
	o.cancelSettleLocked()
	var err error
	if o.nav.Next() {
		err = o.mountCurrentLocked()
	}
	o.unlockAndDispatch()
	return err
}

// Previous moves back one item; a no-op at the first item.
func (o *Orchestrator) Previous() error {
	o.mu.Lock()
	o.cancelSettleLocked()
	var err error
	if o.nav.Previous() {
		err = o.mountCurrentLocked()
	}
	o.unlockAndDispatch()
	return err
}

// Restart returns to the first item. Completion state is kept; restarting
// is a navigation action, not a progress reset.
func (o *Orchestrator) Restart() error {
	o.mu.Lock()
	o.cancelSettleLocked()
	items := o.nav.Items()
	if len(items) == 0 {
		o.mu.Unlock()
		return errors.New("playback: session has no content")
	}
	if o.state == SessionNotStarted {
		o.state = SessionInProgress
	}
	err := o.nav.GoTo(items[0].ID)
	if err == nil {
		err = o.mountCurrentLocked()
	}
	o.unlockAndDispatch()
	return err
}

// MarkCurrentComplete records completion of the current item, for content
// types whose completion is an explicit learner action rather than a
// playback signal.
func (o *Orchestrator) MarkCurrentComplete() error {
	o.mu.Lock()
	cur, ok := o.nav.Current()
	if !ok {
		o.mu.Unlock()
		return ErrContentNotFound
	}
	o.handleCompleteLocked(o.token, cur.ID)
	o.unlockAndDispatch()
	return nil
}

// Controller returns the active time-based controller, or nil when the
// current item is not clock-driven.
func (o *Orchestrator) Controller() *Controller {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.controller
}

func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

func (o *Orchestrator) State() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) CurrentItem() (Item, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nav.Current()
}

func (o *Orchestrator) Percentage() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.Percentage()
}

func (o *Orchestrator) CompletedIDs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.CompletedIDs()
}

func (o *Orchestrator) IsComplete(contentID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tracker.IsComplete(contentID)
}

func (o *Orchestrator) CanGoNext() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nav.CanGoNext()
}

func (o *Orchestrator) CanGoPrevious() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nav.CanGoPrevious()
}

func (o *Orchestrator) History() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nav.History()
}

func (o *Orchestrator) Items() []Item {
	return o.nav.Items()
}

func (o *Orchestrator) Options() Options {
	return o.opts
}

// Teardown cancels any pending auto-advance and unmounts the active
// strategy. In-flight callbacks from before the teardown are dropped by the
// token guard.
func (o *Orchestrator) Teardown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelSettleLocked()
	o.token++
	if o.handle != nil {
		o.handle.Unmount()
		o.handle = nil
	}
	o.controller = nil
}

// mountCurrentLocked swaps the active strategy to the current item. Bumping
// the token first makes any callback still in flight from the previous item
// stale.
func (o *Orchestrator) mountCurrentLocked() error {
	cur, ok := o.nav.Current()
	if !ok {
		return ErrContentNotFound
	}
	o.token++
	if o.handle != nil {
		o.handle.Unmount()
		o.handle = nil
	}
	o.controller = nil

	strategy := o.registry.Resolve(cur.Type)
	handle, err := strategy.Mount(cur, &emitter{o: o, token: o.token, contentID: cur.ID})
	if err != nil {
		return err
	}
	o.handle = handle
	if c, ok := handle.(*Controller); ok {
		o.controller = c
	}
	o.pending = append(o.pending, pendingEvent{kind: evContentChange, contentID: cur.ID})
	return nil
}

func (o *Orchestrator) handleProgressLocked(token uint64, contentID string, percent float64) {
	if token != o.token {
		return // stale: the item is no longer active
	}
	o.pending = append(o.pending, pendingEvent{kind: evProgress, contentID: contentID, percent: percent})
}

func (o *Orchestrator) handleCompleteLocked(token uint64, contentID string) {
	if token != o.token {
		return
	}
	if !o.opts.TrackProgress {
		return
	}
	if !o.tracker.MarkComplete(contentID) {
		return // already complete: no duplicate events, no re-advance
	}
	o.pending = append(o.pending, pendingEvent{kind: evContentComplete, contentID: contentID})

	// The last completion can land anywhere in the session; learners may
	// skip ahead and finish earlier items afterwards.
	if o.state != SessionCompleted && o.tracker.IsSessionComplete() {
		o.state = SessionCompleted
		o.pending = append(o.pending, pendingEvent{kind: evSessionComplete})
	}
	if o.nav.CanGoNext() {
		o.scheduleAdvanceLocked()
	}
}

// scheduleAdvanceLocked arms the settle timer. The captured token lets the
// fired task detect that navigation happened in the meantime and give way.
func (o *Orchestrator) scheduleAdvanceLocked() {
	o.cancelSettleLocked()
	token := o.token
	o.cancelSettle = o.sched.Schedule(o.opts.SettleDelay, func() {
		o.mu.Lock()
		o.cancelSettle = nil
		if token != o.token {
			o.mu.Unlock()
			return
		}
		if o.nav.Next() {
			_ = o.mountCurrentLocked()
		}
		o.unlockAndDispatch()
	})
}

func (o *Orchestrator) cancelSettleLocked() {
	if o.cancelSettle != nil {
		o.cancelSettle()
		o.cancelSettle = nil
	}
}

// unlockAndDispatch releases the lock and delivers queued events in order.
// Dispatch outside the lock keeps listeners free to call back in.
func (o *Orchestrator) unlockAndDispatch() {
	events := o.pending
	o.pending = nil
	listeners := make([]Listener, len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			switch ev.kind {
			case evProgress:
				l.OnProgress(ev.contentID, ev.percent)
			case evContentComplete:
				l.OnContentComplete(ev.contentID)
			case evSessionComplete:
				l.OnSessionComplete(o.sessionID)
			case evContentChange:
				l.OnContentChange(ev.contentID)
			}
		}
	}
}

// emitter routes strategy callbacks back into the orchestrator, tagged with
// the activation token of the mount that issued them.
type emitter struct {
	o         *Orchestrator
	token     uint64
	contentID string
}

func (e *emitter) Progress(percent float64) {
	e.o.mu.Lock()
	e.o.handleProgressLocked(e.token, e.contentID, percent)
	e.o.unlockAndDispatch()
}

func (e *emitter) Complete() {
	e.o.mu.Lock()
	e.o.handleCompleteLocked(e.token, e.contentID)
	e.o.unlockAndDispatch()
}

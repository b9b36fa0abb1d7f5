package playback

// Handle is what a mounted strategy gives back so the orchestrator can tear
// it down when the active item changes.
type Handle interface {
	Unmount()
}

// RendererStrategy presents one content type and reports interaction back
// through the emitter it was mounted with. Mount must not emit
// synchronously; the first signal belongs to the event that follows the
// mount (a tick, a load resolution, a learner action).
type RendererStrategy interface {
	Type() ContentType
	Mount(item Item, emit Emitter) (Handle, error)
}

// Registry maps content types to their renderer strategies. Unknown types
// resolve to a fallback "unsupported" strategy instead of failing, so one
// bad content type never breaks the whole session.
type Registry struct {
	strategies map[ContentType]RendererStrategy
	fallback   RendererStrategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[ContentType]RendererStrategy),
		fallback:   UnsupportedStrategy{},
	}
}

func (r *Registry) Register(s RendererStrategy) {
	r.strategies[s.Type()] = s
}

func (r *Registry) SetFallback(s RendererStrategy) {
	r.fallback = s
}

// Resolve never returns nil.
func (r *Registry) Resolve(t ContentType) RendererStrategy {
	if s, ok := r.strategies[t]; ok {
		return s
	}
	return r.fallback
}

func (r *Registry) Supported(t ContentType) bool {
	_, ok := r.strategies[t]
	return ok
}

// NewDefaultRegistry wires the closed content-type set: timed strategies for
// audio and video, manual completion for everything else.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TimedStrategy{ContentType: ContentAudio})
	r.Register(TimedStrategy{ContentType: ContentVideo})
	for _, t := range []ContentType{
		ContentDocument, ContentLiveSession, ContentQuiz, ContentAssignment,
		ContentDiscussion, ContentSurvey, ContentExercise,
	} {
		r.Register(ManualStrategy{ContentType: t})
	}
	return r
}

// TimedStrategy mounts a playback Controller for clock-driven content.
type TimedStrategy struct {
	ContentType ContentType
}

func (s TimedStrategy) Type() ContentType { return s.ContentType }

func (s TimedStrategy) Mount(_ Item, emit Emitter) (Handle, error) {
	return NewController(emit), nil
}

// ManualStrategy covers content completed by an explicit learner action
// (document read, quiz passed, survey submitted). The mount itself holds no
// state; completion is driven through the orchestrator.
type ManualStrategy struct {
	ContentType ContentType
}

func (s ManualStrategy) Type() ContentType { return s.ContentType }

func (s ManualStrategy) Mount(_ Item, _ Emitter) (Handle, error) {
	return nopHandle{}, nil
}

// UnsupportedStrategy is the degrade-gracefully fallback: the item renders
// as unsupported but the session stays navigable past it.
type UnsupportedStrategy struct{}

func (UnsupportedStrategy) Type() ContentType { return "UNSUPPORTED" }

func (UnsupportedStrategy) Mount(_ Item, _ Emitter) (Handle, error) {
	return nopHandle{}, nil
}

type nopHandle struct{}

func (nopHandle) Unmount() {}

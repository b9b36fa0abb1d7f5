package playback

// Tracker holds per-item completion for one session. The aggregate
// percentage is always recomputed from the completed set so it can never
// drift from it.
//
// When requiredOnly is set and the session designates required items, the
// completion scope narrows to those; otherwise every item counts.
type Tracker struct {
	order        []string
	known        map[string]bool
	required     map[string]bool
	completed    map[string]bool
	requiredOnly bool
}

func NewTracker(items []Item, requiredOnly bool) *Tracker {
	t := &Tracker{
		known:        make(map[string]bool, len(items)),
		required:     make(map[string]bool),
		completed:    make(map[string]bool),
		requiredOnly: requiredOnly,
	}
	for _, it := range items {
		t.order = append(t.order, it.ID)
		t.known[it.ID] = true
		if it.Required {
			t.required[it.ID] = true
		}
	}
	return t
}

// Seed pre-marks completions from a persisted progress record. Ids that are
// no longer part of the session are dropped.
func (t *Tracker) Seed(completedIDs []string) {
	for _, id := range completedIDs {
		if t.known[id] {
			t.completed[id] = true
		}
	}
}

// MarkComplete records completion for an item. Idempotent: a duplicate mark
// (or an unknown id) changes nothing and reports false.
func (t *Tracker) MarkComplete(id string) bool {
	if !t.known[id] || t.completed[id] {
		return false
	}
	t.completed[id] = true
	return true
}

func (t *Tracker) IsComplete(id string) bool {
	return t.completed[id]
}

// CompletedIDs returns completed item ids in session order, for
// deterministic persistence.
func (t *Tracker) CompletedIDs() []string {
	out := make([]string, 0, len(t.completed))
	for _, id := range t.order {
		if t.completed[id] {
			out = append(out, id)
		}
	}
	return out
}

func (t *Tracker) CompletedCount() int {
	count := 0
	for _, id := range t.scope() {
		if t.completed[id] {
			count++
		}
	}
	return count
}

// Percentage is completed / total over the completion scope, recomputed on
// every call.
func (t *Tracker) Percentage() float64 {
	scope := t.scope()
	if len(scope) == 0 {
		return 0
	}
	return float64(t.CompletedCount()) / float64(len(scope)) * 100
}

// IsSessionComplete is true iff everything in the completion scope is done.
func (t *Tracker) IsSessionComplete() bool {
	scope := t.scope()
	if len(scope) == 0 {
		return false
	}
	for _, id := range scope {
		if !t.completed[id] {
			return false
		}
	}
	return true
}

func (t *Tracker) scope() []string {
	if !t.requiredOnly || len(t.required) == 0 {
		return t.order
	}
	out := make([]string, 0, len(t.required))
	for _, id := range t.order {
		if t.required[id] {
			out = append(out, id)
		}
	}
	return out
}

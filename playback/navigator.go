package playback

import "sort"

// Navigator holds the ordered content list and the current index. Ordering
// is by ascending Order, the sole ordering key; gaps are fine. It knows
// nothing about content types or completion.
type Navigator struct {
	items   []Item
	index   int
	history []string
}

func NewNavigator(items []Item) *Navigator {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return &Navigator{items: sorted}
}

func (n *Navigator) Len() int {
	return len(n.items)
}

// Items returns the session content in iteration order.
func (n *Navigator) Items() []Item {
	return n.items
}

func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Current() (Item, bool) {
	if len(n.items) == 0 {
		return Item{}, false
	}
	return n.items[n.index], true
}

// GoTo jumps to the item with the given id. An unknown id leaves the
// position unchanged and returns ErrContentNotFound.
func (n *Navigator) GoTo(id string) error {
	for i, it := range n.items {
		if it.ID == id {
			n.index = i
			n.history = append(n.history, id)
			return nil
		}
	}
	return ErrContentNotFound
}

// Next advances one item; a no-op at the last item. Returns whether the
// position moved.
func (n *Navigator) Next() bool {
	if !n.CanGoNext() {
		return false
	}
	n.index++
	n.history = append(n.history, n.items[n.index].ID)
	return true
}

// Previous steps back one item; a no-op at the first item.
func (n *Navigator) Previous() bool {
	if !n.CanGoPrevious() {
		return false
	}
	n.index--
	n.history = append(n.history, n.items[n.index].ID)
	return true
}

func (n *Navigator) CanGoNext() bool {
	return n.index < len(n.items)-1
}

func (n *Navigator) CanGoPrevious() bool {
	return n.index > 0
}

// History is the append-only list of visited item ids. Sessions are short,
// so unbounded growth is acceptable.
func (n *Navigator) History() []string {
	return n.history
}

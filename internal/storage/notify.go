package storage

import "sync"

// Table names used as notification topics.
const (
	TableExercises = "exercises"
	TableSessions  = "training_sessions"
	TableSets      = "exercise_sets"
	TableRecords   = "personal_records"
)

// Notifier broadcasts table-change events to subscribers. Sends are
// coalescing: a subscriber that has not drained its channel yet will see the
// pending tick cover any number of intervening changes.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

type subscription struct {
	tables map[string]struct{}
	ch     chan struct{}
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscription)}
}

// Subscribe returns a channel that receives a tick whenever one of the given
// tables changes, and a cancel function that releases the subscription.
func (n *Notifier) Subscribe(tables ...string) (<-chan struct{}, func()) {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = sub
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish notifies all subscribers interested in table. Never blocks.
func (n *Notifier) Publish(table string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		if _, ok := sub.tables[table]; !ok {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

package memory

import "sync"

// Notifier is the in-memory counterpart of the badger change notifier. The
// memory repositories publish explicitly after each write, since there is no
// storage subsystem underneath to observe.
type Notifier struct {
	mu   sync.Mutex
	subs map[*notifierSub]struct{}
}

type notifierSub struct {
	slices map[string]struct{}
	ch     chan string
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[*notifierSub]struct{})}
}

// Subscribe registers interest in the named slices.
func (n *Notifier) Subscribe(slices ...string) (<-chan string, func()) {
	sub := &notifierSub{
		slices: make(map[string]struct{}, len(slices)),
		ch:     make(chan string, 8),
	}
	for _, slice := range slices {
		sub.slices[slice] = struct{}{}
	}

	n.mu.Lock()
	n.subs[sub] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if _, ok := n.subs[sub]; ok {
				delete(n.subs, sub)
				close(sub.ch)
			}
		})
	}
	return sub.ch, cancel
}

// Publish signals a slice change to every interested subscriber. Slow
// subscribers drop the signal; it is only a re-read hint.
func (n *Notifier) Publish(slice string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs {
		if _, ok := sub.slices[slice]; !ok {
			continue
		}
		select {
		case sub.ch <- slice:
		default:
		}
	}
}

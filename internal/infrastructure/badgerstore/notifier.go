package badgerstore

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"

	"github.com/jirodb/services/api/internal/public/application"
)

// Notifier implements application.ChangeNotifier on top of badger's change
// subscription. Any committed write to a watched prefix, regardless of which
// handler or goroutine issued it, turns into a "slice changed" signal for the
// views subscribed to that slice. The signal carries no data and mutates
// nothing; subscribers re-read on their own.
type Notifier struct {
	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	subs map[*notifierSub]struct{}
}

type notifierSub struct {
	slices map[string]struct{}
	ch     chan string
}

// NewNotifier starts watching the persisted prefixes.
func NewNotifier(db *badger.DB, logger *log.Logger) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
		subs:   make(map[*notifierSub]struct{}),
	}

	matches := []pb.Match{
		{Prefix: []byte(favoritesKey)},
		{Prefix: []byte(visitCountPrefix)},
		{Prefix: []byte(flagPrefix)},
		{Prefix: []byte(diaryPrefix)},
	}

	go func() {
		defer close(n.done)
		err := db.Subscribe(ctx, n.dispatch, matches)
		if err != nil && !errors.Is(err, context.Canceled) && n.logger != nil {
			n.logger.Printf("変更通知の購読が停止しました: %v", err)
		}
	}()

	return n
}

// Close stops the badger subscription and closes all subscriber channels.
func (n *Notifier) Close() {
	n.cancel()
	<-n.done

	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs {
		close(sub.ch)
	}
	n.subs = make(map[*notifierSub]struct{})
}

// Subscribe registers interest in the named slices. The returned cancel
// function unregisters and closes the channel; calling it twice is safe.
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

// dispatch maps a batch of changed keys to slice names and fans them out.
func (n *Notifier) dispatch(list *badger.KVList) error {
	changed := make(map[string]struct{})
	for _, kv := range list.Kv {
		if slice := sliceForKey(string(kv.Key)); slice != "" {
			changed[slice] = struct{}{}
		}
	}
	for slice := range changed {
		n.publish(slice)
	}
	return nil
}

func (n *Notifier) publish(slice string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs {
		if _, ok := sub.slices[slice]; !ok {
			continue
		}
		// 満杯なら捨てる。通知は「再読込せよ」という合図でしかなく、
		// 取りこぼしても次の書き込みでまた届く。
		select {
		case sub.ch <- slice:
		default:
		}
	}
}

func sliceForKey(key string) string {
	switch {
	case key == favoritesKey:
		return application.SliceFavorites
	case strings.HasPrefix(key, visitCountPrefix):
		return application.SliceVisits
	case strings.HasPrefix(key, flagPrefix):
		return application.SliceFlags
	case strings.HasPrefix(key, diaryPrefix):
		return application.SliceDiary
	}
	return ""
}

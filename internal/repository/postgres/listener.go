package postgres

import (
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ListenChannel is the NOTIFY channel fed by the user_words trigger.
const ListenChannel = "user_words_changed"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
)

// Listener implements repository.ChangeNotifier on top of Postgres
// LISTEN/NOTIFY. Notifications fan out to subscribers on the listener
// goroutine; callbacks must not block for long.
type Listener struct {
	pl     *pq.Listener
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[int]func(self bool)
	nextID int
	closed bool

	done chan struct{}
}

// NewListener connects a dedicated LISTEN session and starts dispatching
// change notifications.
func NewListener(dsn string, logger *zap.Logger) (*Listener, error) {
	pl := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("Listener connection event",
					zap.Int("event", int(event)),
					zap.Error(err),
				)
			}
		})

	if err := pl.Listen(ListenChannel); err != nil {
		pl.Close()
		return nil, err
	}

	l := &Listener{
		pl:     pl,
		logger: logger,
		subs:   make(map[int]func(self bool)),
		done:   make(chan struct{}),
	}

	go l.run()

	return l, nil
}

// Subscribe registers a change callback and returns an idempotent
// unsubscribe function.
func (l *Listener) Subscribe(fn func(self bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Close stops dispatching and tears down the LISTEN session. Idempotent.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	close(l.done)
	return l.pl.Close()
}

func (l *Listener) run() {
	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.pl.Notify:
			if !ok {
				return
			}
			// n is nil after a connection loss; fan out anyway so caches
			// re-sync against whatever they may have missed.
			if n != nil {
				l.logger.Debug("Store change notification", zap.String("op", n.Extra))
			}
			l.fanout()
		}
	}
}

// fanout invokes subscribers outside the lock so a callback blocked on its
// own mutex cannot deadlock against Subscribe or Close.
func (l *Listener) fanout() {
	l.mu.Lock()
	fns := make([]func(self bool), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(false)
	}
}

package dictionary

import (
	"errors"
	"sync"
	"unicode/utf8"

	"userdict/internal/domain"
	"userdict/internal/engine"
	"userdict/internal/metrics"
	"userdict/internal/repository"

	"go.uber.org/zap"
)

// ErrClosed is returned by AddWord after Close.
var ErrClosed = errors.New("dictionary is closed")

const (
	// DefaultMaxWordLength caps word length in runes. Longer words are
	// dropped; downstream recursive consumers cannot handle them.
	DefaultMaxWordLength = 48

	// DefaultQueueSize bounds the persistence queue. Writes beyond it are
	// dropped rather than blocking the caller.
	DefaultQueueSize = 64
)

type cacheState int

const (
	cacheStale cacheState = iota
	cacheFresh
)

// Options configures a Dictionary.
type Options struct {
	Locale        string
	MaxWordLength int
	QueueSize     int
}

type persistRequest struct {
	word      string
	frequency int
}

// Dictionary keeps an in-memory, prefix-searchable cache of user words for a
// single locale, backed by a persistent word store. The store is the source
// of truth: change notifications mark the cache stale, and every read or
// write path re-checks the state under the lock and reloads before trusting
// the cache. Writes go to the cache synchronously and to the store through a
// single background worker.
type Dictionary struct {
	engine engine.Engine
	store  repository.WordStore
	logger *zap.Logger

	locale        string
	maxWordLength int

	mu     sync.Mutex
	state  cacheState
	closed bool

	unsubscribe func()
	persist     chan persistRequest
	wg          sync.WaitGroup
}

// New subscribes to store change notifications, starts the persistence
// worker and performs the initial load. A failed initial load is logged and
// leaves the cache stale; the next read path retries.
func New(eng engine.Engine, store repository.WordStore, notifier repository.ChangeNotifier, opts Options, logger *zap.Logger) *Dictionary {
	maxLen := opts.MaxWordLength
	if maxLen <= 0 {
		maxLen = DefaultMaxWordLength
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	d := &Dictionary{
		engine:        eng,
		store:         store,
		logger:        logger,
		locale:        opts.Locale,
		maxWordLength: maxLen,
		state:         cacheStale,
		persist:       make(chan persistRequest, queueSize),
	}

	if notifier != nil {
		d.unsubscribe = notifier.Subscribe(func(self bool) {
			// Arbitrary notifier goroutine: only flip the flag, never
			// touch the cache from here.
			d.markStale()
		})
	}

	d.wg.Add(1)
	go d.persistWorker()

	if err := d.Reload(); err != nil {
		logger.Warn("Initial dictionary load failed, cache starts stale", zap.Error(err))
	}

	return d
}

// Reload replaces the whole cache with the store's current contents for the
// configured locale. On failure the previous cache survives and stays stale.
func (d *Dictionary) Reload() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reloadLocked()
}

func (d *Dictionary) reloadLocked() error {
	words, err := d.store.FetchByLocale(d.locale)
	if err != nil {
		d.state = cacheStale
		metrics.RecordReload("error")
		return err
	}

	d.engine.Reset()
	for _, w := range words {
		if utf8.RuneCountInString(w.Word) >= d.maxWordLength {
			continue
		}
		d.engine.Insert(w.Word, domain.ClampFrequency(w.Frequency))
	}

	d.state = cacheFresh
	metrics.RecordReload("ok")
	metrics.SetCachedWords(d.engine.Len())
	return nil
}

// ensureFreshLocked reloads at most once when the cache is stale. A failed
// reload is logged and the previous cache keeps serving.
func (d *Dictionary) ensureFreshLocked() {
	if d.state == cacheStale {
		if err := d.reloadLocked(); err != nil {
			d.logger.Warn("Reload failed, serving previous cache", zap.Error(err))
		}
	}
}

func (d *Dictionary) markStale() {
	d.mu.Lock()
	d.state = cacheStale
	d.mu.Unlock()
}

// AddWord inserts the word into the cache immediately and schedules a
// best-effort upsert into the store. Words at or beyond the maximum length
// are silently ignored. Staleness is never cleared here; only a successful
// reload moves the cache to fresh.
func (d *Dictionary) AddWord(word string, frequency int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	d.ensureFreshLocked()

	if utf8.RuneCountInString(word) >= d.maxWordLength {
		return nil
	}

	frequency = domain.ClampFrequency(frequency)
	d.engine.Insert(word, frequency)
	metrics.SetCachedWords(d.engine.Len())

	select {
	case d.persist <- persistRequest{word: word, frequency: frequency}:
	default:
		d.logger.Warn("Persistence queue full, dropping write", zap.String("word", word))
		metrics.RecordPersist("dropped")
	}

	return nil
}

// Lookup returns cached candidates starting with prefix, reloading first if
// the cache is stale.
func (d *Dictionary) Lookup(prefix string, limit int) []domain.Suggestion {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ensureFreshLocked()
	return d.engine.Lookup(prefix, limit)
}

// IsValidWord reports whether the word is in the cache, reloading first if
// the cache is stale.
func (d *Dictionary) IsValidWord(word string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ensureFreshLocked()
	return d.engine.Contains(word)
}

// Enabled reports whether the persistent store is currently reachable.
// It never mutates cache state.
func (d *Dictionary) Enabled() bool {
	return d.store.Ping() == nil
}

// Close unsubscribes from change notifications and waits for queued writes
// to drain. Idempotent; reads keep serving the in-memory cache afterwards.
func (d *Dictionary) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	close(d.persist)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dictionary) persistWorker() {
	defer d.wg.Done()
	for req := range d.persist {
		d.upsert(req)
	}
}

// upsert writes one word to the store: update the record when one exists for
// this exact locale, otherwise insert. A locale-less record is shared across
// locales and is never overwritten; the locale-specific frequency becomes its
// own row. Failures mark the cache stale so the next read reconciles.
func (d *Dictionary) upsert(req persistRequest) {
	existing, err := d.store.Find(req.word, d.locale)
	if err != nil {
		d.logger.Debug("Word lookup for persistence failed",
			zap.String("word", req.word),
			zap.Error(err),
		)
		metrics.RecordPersist("error")
		d.markStale()
		return
	}

	if existing != nil && existing.Locale != nil && *existing.Locale == d.locale {
		if err := d.store.UpdateFrequency(existing.ID, req.frequency); err != nil {
			d.logger.Debug("Word frequency update failed",
				zap.String("word", req.word),
				zap.Int64("id", existing.ID),
				zap.Error(err),
			)
			metrics.RecordPersist("error")
			d.markStale()
			return
		}
		metrics.RecordPersist("update")
		return
	}

	if _, err := d.store.Insert(req.word, req.frequency, d.locale, 0); err != nil {
		d.logger.Debug("Word insert failed",
			zap.String("word", req.word),
			zap.Error(err),
		)
		metrics.RecordPersist("error")
		d.markStale()
		return
	}
	metrics.RecordPersist("insert")
}

package testutil

import (
	"sync"

	"userdict/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockWordStore is a mock for repository.WordStore
type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) FetchByLocale(locale string) ([]domain.Word, error) {
	args := m.Called(locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordStore) Find(word, locale string) (*domain.Word, error) {
	args := m.Called(word, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordStore) Insert(word string, frequency int, locale string, appID int) (int64, error) {
	args := m.Called(word, frequency, locale, appID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWordStore) UpdateFrequency(id int64, frequency int) error {
	args := m.Called(id, frequency)
	return args.Error(0)
}

func (m *MockWordStore) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// FakeNotifier is a repository.ChangeNotifier that lets tests fire change
// notifications synchronously.
type FakeNotifier struct {
	mu     sync.Mutex
	subs   map[int]func(self bool)
	nextID int
	closed bool
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{subs: make(map[int]func(self bool))}
}

func (n *FakeNotifier) Subscribe(fn func(self bool)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *FakeNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

// Fire delivers a change notification to every subscriber.
func (n *FakeNotifier) Fire(self bool) {
	n.mu.Lock()
	fns := make([]func(self bool), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(self)
	}
}

// Subscribers returns the current subscriber count.
func (n *FakeNotifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Closed reports whether Close was called.
func (n *FakeNotifier) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

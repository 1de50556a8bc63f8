package dweeter

import (
	"sync"
	"sync/atomic"
)

// subscription represents an active message subscription.
type subscription struct {
	id       uint64
	callback func(*Message)
	active   atomic.Bool
}

// subscriptionManager fans delivered messages out to watchers of one
// mailbox. Callbacks are never invoked after unsubscription completes.
type subscriptionManager struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID atomic.Uint64
}

func newSubscriptionManager() *subscriptionManager {
	return &subscriptionManager{
		subs: make(map[uint64]*subscription),
	}
}

// subscribe registers callback and returns the function that removes it.
func (m *subscriptionManager) subscribe(callback func(*Message)) func() {
	sub := &subscription{
		id:       m.nextID.Add(1),
		callback: callback,
	}
	sub.active.Store(true)

	m.mu.Lock()
	m.subs[sub.id] = sub
	m.mu.Unlock()

	return func() {
		m.unsubscribe(sub.id)
	}
}

// unsubscribe removes a subscription. Safe to call multiple times.
func (m *subscriptionManager) unsubscribe(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub, ok := m.subs[id]; ok {
		sub.active.Store(false)
		delete(m.subs, id)
	}
}

// notify calls every active callback with msg, outside the lock.
func (m *subscriptionManager) notify(msg *Message) {
	m.mu.RLock()
	subs := make([]*subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.callback(msg)
		}
	}
}

func (m *subscriptionManager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

package itinerary

import (
	"container/list"
	"crypto/sha256"
	"sync"
)

// Memo caches Parse results keyed by the SHA-256 of the proposal, evicting
// the least recently used entry past its capacity. Returned itineraries are
// shared between callers and must not be modified.
type Memo struct {
	mu      sync.Mutex
	cap     int
	order   *list.List
	entries map[[sha256.Size]byte]*list.Element

	hits, misses int64
}

type memoEntry struct {
	key [sha256.Size]byte
	it  *Itinerary
}

// MemoStats is a point-in-time view of cache usage.
type MemoStats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func NewMemo(capacity int) *Memo {
	if capacity <= 0 {
		capacity = 256
	}
	return &Memo{
		cap:     capacity,
		order:   list.New(),
		entries: make(map[[sha256.Size]byte]*list.Element),
	}
}

// Parse returns the cached itinerary for markdown, parsing it on a miss.
func (m *Memo) Parse(markdown string) *Itinerary {
	key := sha256.Sum256([]byte(markdown))

	m.mu.Lock()
	if el, ok := m.entries[key]; ok {
		m.order.MoveToFront(el)
		m.hits++
		it := el.Value.(*memoEntry).it
		m.mu.Unlock()
		return it
	}
	m.misses++
	m.mu.Unlock()

	// Parsing happens outside the lock; concurrent misses on the same
	// input produce equal results, and the first one stored is kept.
	it := Parse(markdown)

	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		m.order.MoveToFront(el)
		return el.Value.(*memoEntry).it
	}
	m.entries[key] = m.order.PushFront(&memoEntry{key: key, it: it})
	for m.order.Len() > m.cap {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoEntry).key)
	}
	return it
}

func (m *Memo) Stats() MemoStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoStats{Size: m.order.Len(), Hits: m.hits, Misses: m.misses}
}

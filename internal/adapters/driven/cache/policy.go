package cache

import (
	"container/list"
	"fmt"
	"math/rand/v2"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// Policy tracks cached keys and chooses which one to evict.
// Policies are not thread-safe; Bounded calls them under its lock.
type Policy interface {
	// Added records a new key.
	Added(key string)

	// Touched records an access to an existing key.
	Touched(key string)

	// Removed forgets key.
	Removed(key string)

	// Victim returns the key to evict, or false if no key is tracked.
	Victim() (string, bool)
}

// NewPolicy returns the policy named by p.
func NewPolicy(p domain.EvictionPolicy) (Policy, error) {
	switch p {
	case domain.EvictionRandom, "":
		return NewRandom(), nil
	case domain.EvictionLRU:
		return NewLRU(), nil
	default:
		return nil, fmt.Errorf("%w: unknown eviction policy %q", domain.ErrInvalidInput, p)
	}
}

// Random evicts a uniformly random key.
type Random struct {
	keys  []string
	index map[string]int
}

// NewRandom returns a random eviction policy.
func NewRandom() *Random {
	return &Random{index: make(map[string]int)}
}

// Added records key.
func (r *Random) Added(key string) {
	if _, ok := r.index[key]; ok {
		return
	}
	r.index[key] = len(r.keys)
	r.keys = append(r.keys, key)
}

// Touched does nothing; access order does not matter.
func (r *Random) Touched(string) {}

// Removed forgets key by swapping it with the last key.
func (r *Random) Removed(key string) {
	i, ok := r.index[key]
	if !ok {
		return
	}
	last := len(r.keys) - 1
	r.keys[i] = r.keys[last]
	r.index[r.keys[i]] = i
	r.keys = r.keys[:last]
	delete(r.index, key)
}

// Victim picks a random key.
func (r *Random) Victim() (string, bool) {
	if len(r.keys) == 0 {
		return "", false
	}
	return r.keys[rand.IntN(len(r.keys))], true
}

// LRU evicts the least recently used key.
type LRU struct {
	order *list.List // front is most recently used
	items map[string]*list.Element
}

// NewLRU returns a least-recently-used eviction policy.
func NewLRU() *LRU {
	return &LRU{order: list.New(), items: make(map[string]*list.Element)}
}

// Added records key as most recently used.
func (l *LRU) Added(key string) {
	if el, ok := l.items[key]; ok {
		l.order.MoveToFront(el)
		return
	}
	l.items[key] = l.order.PushFront(key)
}

// Touched marks key as most recently used.
func (l *LRU) Touched(key string) {
	if el, ok := l.items[key]; ok {
		l.order.MoveToFront(el)
	}
}

// Removed forgets key.
func (l *LRU) Removed(key string) {
	if el, ok := l.items[key]; ok {
		l.order.Remove(el)
		delete(l.items, key)
	}
}

// Victim returns the least recently used key.
func (l *LRU) Victim() (string, bool) {
	el := l.order.Back()
	if el == nil {
		return "", false
	}
	return el.Value.(string), true
}

// Package hashmap provides a generic chained hash table.
package hashmap

import (
	"fmt"
	"sync"
	"unsafe"
)

// DefaultSlots is the default number of hash slots for a new map.
const DefaultSlots = 101

// growthFactor numerator/denominator: the table doubles once
// count > numSlots * 3 / 2 (target load factor 1.5).
const (
	growthNum = 3
	growthDen = 2
)

// entry is one chain link. The map exclusively owns its entries; keys and
// values are stored by value, so pointer-like types keep their referents
// alive only as long as the caller does.
type entry[K comparable, V comparable] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Map is a separately-chained hash table with a pluggable hash function
// and lock policy.
//
// Invariants: every entry lives in the bucket its key hashes to for the
// current slot count, no two entries share a key, and Count equals the sum
// of all chain lengths. The slot count only grows automatically, never
// shrinks.
type Map[K comparable, V comparable] struct {
	slots []*entry[K, V]
	count int
	hash  HashFunc[K]
	lock  LockPolicy
}

// Option configures a Map at construction time.
type Option func(*settings)

type settings struct {
	numSlots int
	lock     LockPolicy
}

// WithSlots sets the initial number of hash slots.
// Values below 1 fall back to DefaultSlots.
func WithSlots(numSlots int) Option {
	return func(s *settings) {
		if numSlots > 0 {
			s.numSlots = numSlots
		}
	}
}

// WithLocking makes every public operation acquire an internal mutex,
// making the map safe for concurrent use. Mutual exclusion only: readers
// get no extra concurrency.
func WithLocking() Option {
	return func(s *settings) {
		s.lock = &sync.Mutex{}
	}
}

// WithLockPolicy installs a custom lock policy.
func WithLockPolicy(lock LockPolicy) Option {
	return func(s *settings) {
		if lock != nil {
			s.lock = lock
		}
	}
}

// New creates an empty map using HashAny as its hash function.
func New[K comparable, V comparable](opts ...Option) *Map[K, V] {
	return NewWithHash[K, V](HashAny[K], opts...)
}

// NewWithHash creates an empty map using the given hash function.
// The function must return an index in [0, numSlots) for the numSlots it
// is handed; out-of-range results panic.
func NewWithHash[K comparable, V comparable](hash HashFunc[K], opts ...Option) *Map[K, V] {
	s := settings{
		numSlots: DefaultSlots,
		lock:     NoLock{},
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Map[K, V]{
		slots: make([]*entry[K, V], s.numSlots),
		hash:  hash,
		lock:  s.lock,
	}
}

// Count returns the number of entries in the map.
func (m *Map[K, V]) Count() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.count
}

// NumSlots returns the number of hash slots currently in use.
func (m *Map[K, V]) NumSlots() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.slots)
}

// Get returns the value stored for key, or the zero value and false if the
// key is absent. Absence is not an error.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for e := m.slots[m.slotFor(key, len(m.slots))]; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}

	var zero V
	return zero, false
}

// GetOr returns the value stored for key, or fallback if the key is absent.
func (m *Map[K, V]) GetOr(key K, fallback V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return fallback
}

// Has reports whether the map contains the key.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// HasValue reports whether at least one entry holds the given value.
// This is a full O(n) scan.
func (m *Map[K, V]) HasValue(value V) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, head := range m.slots {
		for e := head; e != nil; e = e.next {
			if e.value == value {
				return true
			}
		}
	}
	return false
}

// Set adds or replaces an entry. An existing key has its value overwritten
// in place; a new key is prepended to its bucket chain. Crossing the 1.5
// load factor triggers an automatic remap to double the slot count.
func (m *Map[K, V]) Set(key K, value V) {
	m.lock.Lock()
	defer m.lock.Unlock()

	idx := m.slotFor(key, len(m.slots))
	head := m.slots[idx]

	for e := head; e != nil; e = e.next {
		if e.key == key {
			e.value = value
			return
		}
	}

	m.slots[idx] = &entry[K, V]{key: key, value: value, next: head}
	m.count++

	if m.count > (len(m.slots)*growthNum)/growthDen {
		m.remap(len(m.slots) * 2)
	}
}

// Remove deletes the entry with the given key, if any. Removing an absent
// key is a no-op.
func (m *Map[K, V]) Remove(key K) {
	m.lock.Lock()
	defer m.lock.Unlock()

	idx := m.slotFor(key, len(m.slots))
	var prev *entry[K, V]

	for e := m.slots[idx]; e != nil; e = e.next {
		if e.key == key {
			if prev != nil {
				prev.next = e.next
			} else {
				m.slots[idx] = e.next
			}
			m.count--
			return
		}
		prev = e
	}
}

// RemoveValue deletes every entry whose value equals the given value and
// returns how many were removed. Values are not unique, so zero, one, or
// many entries may go.
func (m *Map[K, V]) RemoveValue(value V) int {
	m.lock.Lock()
	defer m.lock.Unlock()

	removed := 0
	for i := range m.slots {
		var prev *entry[K, V]
		e := m.slots[i]
		for e != nil {
			if e.value == value {
				next := e.next
				if prev != nil {
					prev.next = next
				} else {
					m.slots[i] = next
				}
				m.count--
				removed++
				e = next
			} else {
				prev = e
				e = e.next
			}
		}
	}
	return removed
}

// Remap rebuilds the table with a different slot count, rehashing every
// entry into the new layout and swapping it in whole. The entry set and
// count are preserved. It is used internally for growth and may be called
// directly for manual capacity tuning. newNumSlots must be positive.
func (m *Map[K, V]) Remap(newNumSlots int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.remap(newNumSlots)
}

// remap is the lock-free core of Remap; callers hold the policy lock.
// Entries are relinked into the fresh slot array rather than reallocated,
// so the operation never exposes a half-migrated table.
func (m *Map[K, V]) remap(newNumSlots int) {
	if newNumSlots <= 0 {
		panic(fmt.Sprintf("hashmap: remap to %d slots", newNumSlots))
	}

	fresh := make([]*entry[K, V], newNumSlots)
	for _, head := range m.slots {
		for e := head; e != nil; {
			next := e.next
			idx := m.slotFor(e.key, newNumSlots)
			e.next = fresh[idx]
			fresh[idx] = e
			e = next
		}
	}
	m.slots = fresh
}

// Clear releases all entries and resets the count to zero. The current
// slot count is kept.
func (m *Map[K, V]) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for i := range m.slots {
		m.slots[i] = nil
	}
	m.count = 0
}

// Swap exchanges the storage of two maps of the same type in O(1): slots,
// counts, and hash functions move together so each map keeps its bucket
// invariant. Lock policies stay put. Locks are taken in address order so
// two goroutines swapping the same pair cannot deadlock.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	if m == other {
		return
	}

	first, second := m, other
	if uintptr(unsafe.Pointer(other)) < uintptr(unsafe.Pointer(m)) {
		first, second = other, m
	}
	first.lock.Lock()
	defer first.lock.Unlock()
	second.lock.Lock()
	defer second.lock.Unlock()

	m.slots, other.slots = other.slots, m.slots
	m.count, other.count = other.count, m.count
	m.hash, other.hash = other.hash, m.hash
}

// Range calls fn for each entry under the policy lock, in unspecified
// order, until fn returns false. fn must not call back into the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, head := range m.slots {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// slotFor hashes the key for a table of numSlots buckets and bounds-checks
// the result. An out-of-range index means the hash function breaks its
// contract, which is a caller programming error.
func (m *Map[K, V]) slotFor(key K, numSlots int) int {
	idx := m.hash(key, numSlots)
	if idx < 0 || idx >= numSlots {
		panic(fmt.Sprintf("hashmap: hash function returned %d for %d slots", idx, numSlots))
	}
	return idx
}

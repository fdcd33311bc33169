// Package hashmap provides a generic chained hash table for corekit.
//
// This package implements a resizable, separately-chained map with the
// following features:
//
//   - Chaining: Each slot holds a singly linked chain of entries
//   - Pluggable Hashing: Caller-supplied hash functions via HashFunc
//   - Pluggable Locking: No-op or mutex-based LockPolicy
//   - Automatic Growth: Table doubles once the load factor exceeds 1.5
//   - Iteration: Forward-only cursor in unspecified (bucket) order
//
// Usage:
//
//	m := hashmap.New[int, string]()
//	m.Set(1, "item1")
//	val, ok := m.Get(1)
//
//	for it := m.Iter(); it.Next(); {
//		_ = it.Key()
//	}
//
// Thread Safety:
//
// By default a Map is single-threaded only. Constructed with WithLocking,
// every public operation (including Iter construction and the read-only
// accessors) holds a mutex for its duration, so individual operations are
// atomic. Multi-operation sequences are not: composing Has followed by Set
// is not race-free without an external lock held across both calls.
package hashmap

// Package hashmap provides a generic chained hash table.
package hashmap

// Iterator is a forward-only cursor over a Map.
//
// Entries are yielded in bucket order, which bears no resemblance to
// insertion order; iteration order is explicitly not a contract. Any
// structural mutation of the map (a Set that grows the table, Remove,
// RemoveValue, Clear, Remap, Swap) invalidates iterators created before
// it; advancing an invalidated iterator is a documented precondition
// violation, not a runtime-checked one.
type Iterator[K comparable, V comparable] struct {
	m     *Map[K, V]
	entry *entry[K, V]
	index int
}

// Iter creates an iterator positioned before the first entry. With a real
// lock policy, construction itself runs under the map's lock; advancing
// does not.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	m.lock.Lock()
	defer m.lock.Unlock()
	return &Iterator[K, V]{m: m}
}

// Next advances to the next entry, reporting whether one is available.
// Key and Value are only meaningful after Next returns true.
func (it *Iterator[K, V]) Next() bool {
	if it.entry != nil {
		it.entry = it.entry.next
	}

	for it.entry == nil {
		if it.index >= len(it.m.slots) {
			return false
		}
		it.entry = it.m.slots[it.index]
		it.index++
	}

	return true
}

// Key returns the current entry's key, or the zero value if the iterator
// is not positioned on an entry.
func (it *Iterator[K, V]) Key() K {
	if it.entry == nil {
		var zero K
		return zero
	}
	return it.entry.key
}

// Value returns the current entry's value, or the zero value if the
// iterator is not positioned on an entry.
func (it *Iterator[K, V]) Value() V {
	if it.entry == nil {
		var zero V
		return zero
	}
	return it.entry.value
}

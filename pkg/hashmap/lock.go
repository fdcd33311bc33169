// Package hashmap provides a generic chained hash table.
package hashmap

import "sync"

// LockPolicy determines whether a Map's operations are mutually exclusive
// across threads. A *sync.Mutex satisfies it directly.
type LockPolicy interface {
	Lock()
	Unlock()
}

// NoLock is the no-op lock policy. A map using it is single-threaded only.
type NoLock struct{}

// Lock implements LockPolicy.
func (NoLock) Lock() {}

// Unlock implements LockPolicy.
func (NoLock) Unlock() {}

var _ LockPolicy = NoLock{}
var _ LockPolicy = (*sync.Mutex)(nil)

// Package hashmap provides a generic chained hash table.
package hashmap

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/spaolacci/murmur3"
)

// HashFunc maps a key deterministically to a slot index in [0, numSlots)
// for the current slot count. Returning an index outside that range is a
// programming error and panics.
type HashFunc[K comparable] func(key K, numSlots int) int

// defaultSeed makes the generic hash vary between processes.
var defaultSeed = maphash.MakeSeed()

// HashAny hashes any comparable key. It is the default hash function for
// maps created without an explicit one.
func HashAny[K comparable](key K, numSlots int) int {
	return int(maphash.Comparable(defaultSeed, key) % uint64(numSlots))
}

// HashString hashes a string key using murmur3, matching the key
// distribution scheme used for shard routing.
func HashString(key string, numSlots int) int {
	return int(murmur3.Sum32([]byte(key)) % uint32(numSlots))
}

// HashBytes hashes a byte-slice-backed key using murmur3.
func HashBytes(key []byte, numSlots int) int {
	return int(murmur3.Sum32(key) % uint32(numSlots))
}

// HashInt hashes an integer key by absolute value.
func HashInt(key int, numSlots int) int {
	if key < 0 {
		key = -key
		if key < 0 { // math.MinInt negates to itself
			key = 0
		}
	}
	return key % numSlots
}

// HashUint64 hashes a 64-bit key through murmur3 for better slot spread
// than plain modulo on clustered keys.
func HashUint64(key uint64, numSlots int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return int(murmur3.Sum64(buf[:]) % uint64(numSlots))
}

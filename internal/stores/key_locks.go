package stores

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"sync"
)

const defaultLockStripes = 64

// keyLocks serializes work per key with a fixed set of striped mutexes.
type keyLocks struct {
	stripes []sync.Mutex
}

func newKeyLocks(n int) *keyLocks {
	if n <= 0 {
		n = defaultLockStripes
	}
	return &keyLocks{stripes: make([]sync.Mutex, n)}
}

// Lock acquires the stripes of all keys in ascending stripe order, so callers
// locking several keys never deadlock each other. The returned func releases them.
func (l *keyLocks) Lock(keys ...string) (unlock func()) {
	indexes := make([]int, 0, len(keys))
	seen := make(map[int]struct{}, len(keys))
	for _, key := range keys {
		idx := stripeIndex(key, len(l.stripes))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		l.stripes[idx].Lock()
	}
	return func() {
		for i := len(indexes) - 1; i >= 0; i-- {
			l.stripes[indexes[i]].Unlock()
		}
	}
}

func stripeIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	v := binary.LittleEndian.Uint32(hash.Sum(nil))
	return int(v % uint32(n))
}

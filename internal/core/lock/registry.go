package lock

import "sync"

// Registry hands out one mutex per product ID. Entries are created lazily on
// first access and never removed, so a handle obtained once stays valid for
// the life of the process. The registry-wide mutex guards only the
// lookup-or-insert step, never a per-product critical section.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// Get returns the lock handle for productID, creating it if needed. Repeated
// calls with the same ID return the same handle instance.
func (r *Registry) Get(productID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[productID] = l
	}
	return l
}

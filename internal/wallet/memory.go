package wallet

import "sync"

// MemoryBackend is an in-memory Backend. It is exported so tests in other
// packages can run a full wallet service without touching disk.
type MemoryBackend struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{m: make(map[string][]byte)}
}

func (b *MemoryBackend) Put(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.m, key)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// Compile-time assertion that MemoryBackend implements Backend.
var _ Backend = (*MemoryBackend)(nil)

package wallet

// Backend is the raw key-value layer beneath the wallet service. Values are
// already encrypted by the time they reach a backend.
type Backend interface {
	// Put stores value under key, overwriting any previous value.
	Put(key string, value []byte) error
	// Get returns the value under key; ok is false if the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Delete removes key; deleting an absent key is not an error.
	Delete(key string) error
	// Close releases the backend's resources.
	Close() error
}

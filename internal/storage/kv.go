package storage

// KV is the persistence boundary the session store writes through. It
// mirrors the browser local-storage surface the frontend uses: opaque blobs
// by key, no ranges, no transactions.
type KV interface {
	// Load returns the blob for key, or ok=false if the key was never
	// written.
	Load(key string) (data []byte, ok bool, err error)
	Store(key string, data []byte) error
	Remove(key string) error
}

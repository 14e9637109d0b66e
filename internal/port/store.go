package port

// KeyValue is a durable key→string mapping surviving process restarts.
// Writes are synchronous; when Set returns, the value is on disk.
type KeyValue interface {
	// Get returns the stored value, or ErrKeyNotFound.
	Get(key string) (string, error)

	// Set stores the value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

package store

import "context"

// Collection keys. Values are UTF-8 JSON encodings of the collection
// (events, users, registrations) or of the single settings record.
const (
	KeyEvents        = "events"
	KeyUsers         = "users"
	KeyRegistrations = "registrations"
	KeySettings      = "settings"
)

// Store is the durable key-value contract the repository persists through.
// Get reports (value, present, error); a missing key is not an error.
// Implementations other than MemoryStore survive process restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

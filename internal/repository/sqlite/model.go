package sqlite

import "time"

// Entry is one persisted key with its serialized value.
// Values are opaque to the repository; callers decide the encoding.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Options tunes a repository opened from configuration
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

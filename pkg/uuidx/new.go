package uuidx

import "github.com/google/uuid"

// New generates a new UUID using the version 7 format and returns it.
// It panics if the UUID generation fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString generates a new version 7 UUID and returns it as a string.
func NewString() string {
	return New().String()
}

// Prefixed returns a new version 7 UUID string prefixed with the given kind,
// separated by a slash, e.g. "push-supplier/01913b6e-...". An empty prefix
// yields the bare UUID string.
func Prefixed(prefix string) string {
	if prefix == "" {
		return NewString()
	}
	return prefix + "/" + NewString()
}

package domain

import "errors"

var (
	// ErrUnavailable covers every way the backing store can fail: file I/O,
	// encoding, decoding. Callers cannot distinguish the causes.
	ErrUnavailable = errors.New("internal database was inaccessible")

	// ErrNotFound is returned by lookups that match nothing. Mutations that
	// match nothing succeed silently instead.
	ErrNotFound = errors.New("not found")
)

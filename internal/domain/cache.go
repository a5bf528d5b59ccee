package domain

import "context"

// ListCache caches read models. Implementations must be safe for concurrent
// use and must fall back to load when the backing store is unavailable.
type ListCache interface {
	// Fetch fills dest from the cache. On a miss it calls load, which must
	// fill dest, and stores the result unless Invalidate ran in between.
	Fetch(ctx context.Context, key string, dest any, load func() error) error
	// Invalidate drops every entry written so far.
	Invalidate(ctx context.Context) error
}

package cache

import (
	"context"

	"roombooking/internal/domain"
)

// Nop is a ListCache that never stores anything. It is used when Redis is
// not configured.
type Nop struct{}

var _ domain.ListCache = Nop{}

func (Nop) Fetch(_ context.Context, _ string, _ any, load func() error) error { return load() }

func (Nop) Invalidate(context.Context) error { return nil }

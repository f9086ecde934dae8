package availability

import "context"

// Lookup answers whether a username is already held by another profile.
// Implementations must honour ctx cancellation.
type Lookup interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, username string) (bool, error)

func (f LookupFunc) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return f(ctx, username)
}

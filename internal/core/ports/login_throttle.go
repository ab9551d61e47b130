package ports

import "context"

// LoginThrottle limits repeated failed logins per email. A nil throttle
// disables limiting.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

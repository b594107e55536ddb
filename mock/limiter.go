package mock

import (
	"context"

	"demonchart"
)

var _ demonchart.RefreshLimiter = (*RefreshLimiter)(nil)

// RefreshLimiter is a mock implementation of demonchart.RefreshLimiter.
type RefreshLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *RefreshLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

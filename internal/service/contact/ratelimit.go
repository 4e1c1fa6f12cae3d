package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/smesner/contactsweb/internal/pkg/logger"
)

// RateLimiter decides whether a new submission for an address may
// proceed. Allow returns (false, nil) for an ordinary cooldown rejection;
// an error means the decision could not be made at all.
type RateLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// HistoryLimiter admits a submission iff no contact with the same e-mail
// address was recorded within the window. The check and the later insert
// are two separate operations, so concurrent duplicates inside the same
// instant can both pass; the store-backed window makes that an accepted
// narrow race rather than a correctness guarantee.
type HistoryLimiter struct {
	history SubmissionHistory
	window  time.Duration
}

// NewHistoryLimiter creates a limiter over the submission history.
// A non-positive window falls back to one minute.
func NewHistoryLimiter(history SubmissionHistory, window time.Duration) *HistoryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &HistoryLimiter{history: history, window: window}
}

// Allow reports whether the address is outside its cooldown window.
func (l *HistoryLimiter) Allow(ctx context.Context, email string) (bool, error) {
	since := time.Now().UTC().Add(-l.window)
	n, err := l.history.CountRecentByEmail(ctx, email, since)
	if err != nil {
		return false, fmt.Errorf("query submission history: %w", err)
	}

	allowed := n == 0
	logger.Debug("cooldown check", "email", email, "recent", n, "allowed", allowed)
	return allowed, nil
}

package contact

import (
	"context"
	"time"

	"github.com/smesner/contactsweb/internal/domain"
)

// SubmissionHistory is the slice of the store the rate limiter needs.
type SubmissionHistory interface {
	// CountRecentByEmail returns how many contacts with this e-mail
	// address were created at or after since.
	CountRecentByEmail(ctx context.Context, email string, since time.Time) (int, error)
}

// Repository defines the data access contract for contacts. The store is
// the single source of truth for acceptance: once Insert returns, the
// record is durable and visible to subsequent reads.
// Implementations must be safe for concurrent use.
type Repository interface {
	SubmissionHistory

	// Insert persists a new contact and returns its assigned id.
	Insert(ctx context.Context, c *domain.Contact) (int64, error)

	// ListByEmailSuffix returns contacts whose e-mail ends with suffix,
	// ordered by creation time descending (most recent first).
	ListByEmailSuffix(ctx context.Context, suffix string) ([]domain.Contact, error)
}

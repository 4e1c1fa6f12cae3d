package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/smesner/contactsweb/internal/directory"
	"github.com/smesner/contactsweb/internal/domain"
	"github.com/smesner/contactsweb/internal/pkg/logger"
)

// User-facing outcome messages. Every outcome carries one of these;
// callers never see raw errors.
const (
	MsgAccepted    = "Contact saved successfully."
	MsgRateLimited = "Request declined for security reasons. Please try again in a minute."
	MsgFailed      = "Something went wrong while saving the contact. Please try again."
)

// submissionState tracks a submission through the pipeline. Each
// transition has exactly one failure rule: the rate check and the insert
// abort the submission, enrichment and notification never do.
type submissionState string

const (
	stateReceived        submissionState = "received"
	stateRateChecked     submissionState = "rate_checked"
	stateRejected        submissionState = "rejected"
	stateEnriching       submissionState = "enriching"
	statePersisted       submissionState = "persisted"
	stateNotifyAttempted submissionState = "notify_attempted"
	stateDone            submissionState = "done"
	stateErrored         submissionState = "errored"
)

// DirectoryLookup fetches auxiliary profile data for an address.
// (nil, nil) means no profile matched.
type DirectoryLookup interface {
	FindByEmail(ctx context.Context, email string) (*directory.Profile, error)
}

// Notifier delivers an operator notification for an accepted contact.
type Notifier interface {
	Notify(ctx context.Context, c *domain.Contact) error
}

// Service orchestrates contact submissions. All public methods are safe
// for concurrent use if the injected collaborators are.
type Service struct {
	repo      Repository
	limiter   RateLimiter
	lookup    DirectoryLookup
	notifier  Notifier
	bizSuffix string
}

// NewService creates the submission service. lookup and notifier may be
// nil, in which case the corresponding best-effort step is skipped.
func NewService(repo Repository, limiter RateLimiter, lookup DirectoryLookup, notifier Notifier, bizSuffix string) *Service {
	if bizSuffix == "" {
		bizSuffix = ".biz"
	}
	return &Service{
		repo:      repo,
		limiter:   limiter,
		lookup:    lookup,
		notifier:  notifier,
		bizSuffix: bizSuffix,
	}
}

// Submit runs one submission through the pipeline and always returns a
// populated outcome. The error is non-nil only for the two hard failure
// kinds (ErrRateCheckUnavailable, ErrPersistence) and for caller
// cancellation before the record was committed; cooldown rejections are
// a normal outcome, not an error.
func (s *Service) Submit(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionOutcome, error) {
	state := stateReceived
	logger.Info("submission received", "email", req.Email)

	// received → rate_checked
	if err := ctx.Err(); err != nil {
		return domain.SubmissionOutcome{Message: MsgFailed}, err
	}
	allowed, err := s.limiter.Allow(ctx, req.Email)
	if err != nil {
		state = stateErrored
		logger.Error("rate check indeterminate", "email", req.Email, "error", err, "state", state)
		return domain.SubmissionOutcome{Message: MsgFailed},
			fmt.Errorf("%w: %s", ErrRateCheckUnavailable, err)
	}
	state = stateRateChecked

	// rate_checked → rejected
	if !allowed {
		state = stateRejected
		logger.Warn("submission blocked by cooldown", "email", req.Email, "state", state)
		return domain.SubmissionOutcome{Message: MsgRateLimited}, nil
	}

	// rate_checked → enriching
	state = stateEnriching
	c := &domain.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	s.enrich(ctx, c)

	// enriching → persisted
	if err := ctx.Err(); err != nil {
		return domain.SubmissionOutcome{Message: MsgFailed}, err
	}
	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		state = stateErrored
		logger.Error("contact insert failed", "email", req.Email, "error", err, "state", state)
		return domain.SubmissionOutcome{Message: MsgFailed},
			fmt.Errorf("%w: %s", ErrPersistence, err)
	}
	c.ID = id
	state = statePersisted
	logger.Info("contact persisted", "contact_id", id, "email", c.Email)

	// persisted → notify_attempted. Acceptance is already decided; the
	// notification runs on a detached context so a caller that hangs up
	// now cannot abort the send mid-flight.
	state = stateNotifyAttempted
	if s.notifier != nil && ctx.Err() == nil {
		if err := s.notifier.Notify(context.WithoutCancel(ctx), c); err != nil {
			logger.Error("notification failed", "contact_id", id, "error", err, "state", state)
		} else {
			logger.Info("notification sent", "contact_id", id)
		}
	}

	state = stateDone
	logger.Info("submission done", "contact_id", id, "state", state)
	return domain.SubmissionOutcome{
		Accepted:  true,
		Message:   MsgAccepted,
		ContactID: &id,
	}, nil
}

// enrich attempts the directory lookup and merges any match into the
// contact. Every failure is absorbed here: the contact is persisted
// unenriched when the directory cannot help.
func (s *Service) enrich(ctx context.Context, c *domain.Contact) {
	if s.lookup == nil {
		return
	}

	p, err := s.lookup.FindByEmail(ctx, c.Email)
	if err != nil {
		logger.Warn("directory enrichment failed", "email", c.Email, "error", err)
		return
	}
	if p == nil {
		return
	}

	mergeProfile(c, p)
	logger.Info("contact enriched from directory", "email", c.Email)
}

// ListRecentBizContacts returns contacts whose address ends with the
// configured organizational suffix, most recent first.
func (s *Service) ListRecentBizContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.ListByEmailSuffix(ctx, s.bizSuffix)
}

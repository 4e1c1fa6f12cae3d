package api

import (
	"context"
	"net/http"

	"github.com/smesner/contactsweb/internal/domain"
	"github.com/smesner/contactsweb/internal/pkg/httputil"
)

// ContactService is the slice of the submission service the HTTP layer
// needs. Narrowed to an interface so handler tests can run against a
// stub instead of a wired pipeline.
type ContactService interface {
	Submit(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionOutcome, error)
	ListRecentBizContacts(ctx context.Context) ([]domain.Contact, error)
}

// Handlers holds the HTTP handlers for the contacts API.
type Handlers struct {
	svc ContactService
}

// NewHandlers creates the handler set.
func NewHandlers(svc ContactService) *Handlers {
	return &Handlers{svc: svc}
}

// SubmitContact handles POST /api/contacts. The response body is always
// the submission outcome; the status code mirrors it: 201 accepted,
// 429 cooldown rejection, 500 when the pipeline failed hard.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmissionRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		httputil.BadRequest(w, "invalid submission", problems)
		return
	}

	out, err := h.svc.Submit(r.Context(), req)
	switch {
	case err != nil:
		httputil.JSON(w, http.StatusInternalServerError, out)
	case !out.Accepted:
		httputil.JSON(w, http.StatusTooManyRequests, out)
	default:
		httputil.Created(w, out)
	}
}

// ListBizContacts handles GET /api/contacts/biz.
func (h *Handlers) ListBizContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListRecentBizContacts(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	httputil.OK(w, contacts)
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok", "service": "contactsweb"})
}

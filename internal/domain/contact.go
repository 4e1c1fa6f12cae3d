package domain

import (
	"regexp"
	"strings"
	"time"
)

// SubmissionRequest is a visitor-submitted contact form. All three fields
// are required and Email must be syntactically valid; Validate enforces
// this before the request enters the submission pipeline.
type SubmissionRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Validate returns the list of field-level problems with the request.
// An empty slice means the request may be submitted.
func (r SubmissionRequest) Validate() []string {
	var problems []string
	if strings.TrimSpace(r.FirstName) == "" {
		problems = append(problems, "first_name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		problems = append(problems, "last_name is required")
	}
	switch {
	case strings.TrimSpace(r.Email) == "":
		problems = append(problems, "email is required")
	case !ValidateEmail(r.Email):
		problems = append(problems, "email is not a valid address")
	}
	return problems
}

// Contact is a durably recorded submission. Fields beyond the core
// identity are filled only when directory enrichment succeeds; they are
// pointers so that "unset" survives persistence round-trips and is never
// confused with an empty string or zero coordinate.
type Contact struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`

	Phone   *string `json:"phone,omitempty" db:"phone"`
	Website *string `json:"website,omitempty" db:"website"`

	AddressStreet    *string  `json:"address_street,omitempty" db:"address_street"`
	AddressSuite     *string  `json:"address_suite,omitempty" db:"address_suite"`
	AddressCity      *string  `json:"address_city,omitempty" db:"address_city"`
	AddressZipCode   *string  `json:"address_zip_code,omitempty" db:"address_zip_code"`
	AddressLatitude  *float64 `json:"address_latitude,omitempty" db:"address_latitude"`
	AddressLongitude *float64 `json:"address_longitude,omitempty" db:"address_longitude"`

	CompanyName        *string `json:"company_name,omitempty" db:"company_name"`
	CompanyBs          *string `json:"company_bs,omitempty" db:"company_bs"`
	CompanyCatchPhrase *string `json:"company_catch_phrase,omitempty" db:"company_catch_phrase"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasAddress reports whether any address field was enriched.
func (c *Contact) HasAddress() bool {
	return c.AddressStreet != nil || c.AddressSuite != nil ||
		c.AddressCity != nil || c.AddressZipCode != nil ||
		c.AddressLatitude != nil || c.AddressLongitude != nil
}

// HasCompany reports whether any company field was enriched.
func (c *Contact) HasCompany() bool {
	return c.CompanyName != nil || c.CompanyBs != nil || c.CompanyCatchPhrase != nil
}

// HasEnrichment reports whether any directory data was merged in.
func (c *Contact) HasEnrichment() bool {
	return c.Phone != nil || c.Website != nil || c.HasAddress() || c.HasCompany()
}

// SubmissionOutcome is what the caller gets back for every submission,
// accepted or not. Message is always a non-empty human-readable string;
// ContactID is set only when Accepted is true.
type SubmissionOutcome struct {
	Accepted  bool   `json:"accepted"`
	Message   string `json:"message"`
	ContactID *int64 `json:"contact_id,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic e-mail address syntax. It is intentionally
// permissive; the address is only used for lookups and notifications,
// never for delivery to the submitter.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) == 0 || len(email) > 255 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at > 64 {
		return false
	}
	return emailPattern.MatchString(email)
}

// Package contact implements the contact submission pipeline.
//
// The service layer owns the end-to-end flow for one submission: rate
// check, best-effort directory enrichment, durable persistence, and
// best-effort operator notification. It depends on the Repository,
// RateLimiter, DirectoryLookup, and Notifier interfaces defined in this
// package and should never import from api/.
//
// Repository implementations live in repository/postgres/.
package contact

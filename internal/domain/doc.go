// Package domain defines the core business types for the contacts service.
//
// Types in this package are pure value objects with no behavior beyond
// validation: no database dependencies, no HTTP concerns. They are the
// shared language between handlers, the submission service, and the
// repository.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Validation methods are allowed (they're pure functions on the type)
package domain

// Package errs defines the error taxonomy shared by the domain model, the
// use case handlers, and the adapters.
//
// Validation and lookup failures are classified by sentinel errors
// (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange,
// ErrObjectNotFound) so callers can branch with errors.Is without inspecting
// message text. Each sentinel has a matching struct type that carries the
// offending parameter name and an optional cause, built through a pair of
// constructors (New... and New...WithCause).
//
// The HTTP layer relies on this classification to choose response codes:
// not-found errors map to 404, validation errors to 400, everything else
// to 500.
package errs

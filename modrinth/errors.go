package modrinth

import "fmt"

// NotFoundError is returned when the requested resource does not exist, or the
// authenticated user is not permitted to see it (the API reports both as 404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (or no authorization to see it)", e.Resource)
}

// NoAuthorizationError is returned when the API rejects the request with 401.
type NoAuthorizationError struct {
	Operation string
}

func (e *NoAuthorizationError) Error() string {
	return "no authorization to " + e.Operation
}

// InvalidParamError is returned for caller mistakes detected before any network
// call is made, and for 400 responses with a known cause (e.g. following a
// project twice).
type InvalidParamError struct {
	Message string
}

func (e *InvalidParamError) Error() string {
	return e.Message
}

// InvalidRequestError is returned for any other non-success response. The body
// is preserved for diagnostics.
type InvalidRequestError struct {
	StatusCode int
	Body       string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: status %d: %s", e.StatusCode, e.Body)
}

// MissingFieldError is returned when an API response lacks a field the models
// require; the alternative would be a nil dereference far from the cause.
type MissingFieldError struct {
	Model string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s response", e.Field, e.Model)
}

// NoVersionsError is returned when resolution needs a version of a project that
// has none published (possibly after filtering).
type NoVersionsError struct {
	Project string
}

func (e *NoVersionsError) Error() string {
	return "project " + e.Project + " has no published versions"
}

// HashMismatchError is returned by verified downloads when the downloaded
// content does not match a declared hash or size. The mismatching file is not
// written to disk.
type HashMismatchError struct {
	Filename   string
	HashFormat string
	Expected   string
	Calculated string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch for %s: %s %s does not match declared %s",
		e.Filename, e.HashFormat, e.Calculated, e.Expected)
}

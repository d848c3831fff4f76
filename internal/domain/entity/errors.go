package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookup failures. Typed errors below match these
// through errors.Is so callers can branch on the kind alone.
var (
	// ErrInvalidIdentifierFormat indicates the input is not 4 alphanumeric characters.
	ErrInvalidIdentifierFormat = errors.New("invalid identifier format")

	// ErrEntryNotFound indicates the remote database has no such entry.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrRemoteService indicates the remote answered with an unexpected status
	// or an unreadable body.
	ErrRemoteService = errors.New("remote service error")

	// ErrNetworkUnreachable indicates no HTTP response was obtained at all.
	ErrNetworkUnreachable = errors.New("network unreachable")
)

// InvalidIdentifierError carries the offending, already normalized input.
type InvalidIdentifierError struct {
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%q is not a valid PDB ID format: expected 4 alphanumeric characters", e.Value)
}

// Is reports whether target is ErrInvalidIdentifierFormat.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifierFormat
}

// EntryNotFoundError is returned when the entry endpoint answers 404.
type EntryNotFoundError struct {
	ID Identifier
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("PDB ID %q was not found in the RCSB database", string(e.ID))
}

// Is reports whether target is ErrEntryNotFound.
func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrEntryNotFound
}

// RemoteServiceError is returned when the remote was reachable but the
// exchange did not succeed. StatusCode is the HTTP status; Err, when set,
// is the underlying cause (e.g. a decode failure on a 2xx body).
type RemoteServiceError struct {
	StatusCode int
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server responded with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("server responded with status %d", e.StatusCode)
}

// Is reports whether target is ErrRemoteService.
func (e *RemoteServiceError) Is(target error) bool {
	return target == ErrRemoteService
}

// Unwrap returns the underlying cause.
func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// NetworkError is returned when the request produced no HTTP response:
// DNS failure, refused connection, TLS failure, timeout, open circuit.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: unable to reach RCSB PDB servers: %v", e.Err)
}

// Is reports whether target is ErrNetworkUnreachable.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkUnreachable
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message a presentation layer should show for err.
// Network failures get an actionable hint instead of the raw transport error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkUnreachable):
		return "Network connection failed. The RCSB PDB API may be blocked by a firewall, proxy, or ad-blocker. Check connectivity and try again."
	case errors.Is(err, ErrInvalidIdentifierFormat),
		errors.Is(err, ErrEntryNotFound),
		errors.Is(err, ErrRemoteService):
		return err.Error()
	default:
		return "An unexpected error occurred while fetching PDB data."
	}
}

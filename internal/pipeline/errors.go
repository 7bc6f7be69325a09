package pipeline

import "errors"

// Exit codes shared by the command layer. Each maps a class of failures so
// callers can tell known failure modes apart from unanticipated ones.
const (
	ExitOK            = 0
	ExitInputNotFound = 2
	ExitOpenFailure   = 3
	ExitUnexpected    = 4
	ExitStructural    = 5
	ExitWriteFailure  = 6
)

var (
	// ErrInputNotFound: the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrContainerOpen: the file exists but is not a readable container.
	ErrContainerOpen = errors.New("cannot open container file")

	// Structural validation failures against file content.
	ErrSegmentIndex  = errors.New("segment index out of range")
	ErrSegmentType   = errors.New("segment is not a table")
	ErrEmptyTable    = errors.New("table segment has no data")
	ErrColumnMissing = errors.New("required column missing")

	// ErrDestinationExists: destination present and overwrite not requested.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrWrite: serialization failed; no partial destination is left behind.
	ErrWrite = errors.New("write failed")
)

// ExitCode maps a pipeline error to the process exit code the command
// layer reports.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrContainerOpen):
		return ExitOpenFailure
	case errors.Is(err, ErrSegmentIndex),
		errors.Is(err, ErrSegmentType),
		errors.Is(err, ErrEmptyTable),
		errors.Is(err, ErrColumnMissing):
		return ExitStructural
	case errors.Is(err, ErrDestinationExists), errors.Is(err, ErrWrite):
		return ExitWriteFailure
	default:
		return ExitUnexpected
	}
}

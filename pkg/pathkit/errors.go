package pathkit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := organizer.Collapse(ctx, folder, collapse.Options{})
//	if errors.Is(err, pathkit.ErrCollapseCollision) {
//	    // retry with a rename template
//	}
var (
	// ErrInvalidDirective indicates an unknown %-directive in a rename template.
	ErrInvalidDirective = errors.New("invalid directive")

	// ErrUnterminatedCollapsedToken indicates a %C[ directive without a closing bracket.
	ErrUnterminatedCollapsedToken = errors.New("unterminated collapsed-ancestors directive")

	// ErrTimestampUnavailable indicates the filesystem could not supply the requested timestamp.
	ErrTimestampUnavailable = errors.New("timestamp unavailable")

	// ErrNoTimestampAvailable indicates none of the created/modified/accessed timestamps are readable.
	ErrNoTimestampAvailable = errors.New("no timestamp available")

	// ErrInvalidTimestampFormat indicates a timestamp format the date formatter rejects.
	ErrInvalidTimestampFormat = errors.New("invalid timestamp format")

	// ErrInvalidName indicates a template evaluated to a name that cannot be used as a file name.
	ErrInvalidName = errors.New("invalid file name")

	// ErrCollapseCollision indicates files would collide after collapsing and no template was given.
	ErrCollapseCollision = errors.New("collapse collision")

	// ErrUnresolvedCollapseCollision indicates files still collide after applying the rename template.
	ErrUnresolvedCollapseCollision = errors.New("unresolved collapse collision")

	// ErrRenameCollision indicates two files would receive the same name in one directory.
	ErrRenameCollision = errors.New("rename collision")

	// ErrPermissionDenied indicates the filesystem refused access.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDestinationCollision indicates a move destination is already taken.
	ErrDestinationCollision = errors.New("destination already exists")

	// ErrNotEmpty indicates a non-recursive delete of a folder with children.
	ErrNotEmpty = errors.New("folder not empty")

	// ErrPathConflict indicates an object of a different type already exists at the path.
	ErrPathConflict = errors.New("path conflict")

	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")
)

// ParseError reports a rename template that does not match the grammar.
type ParseError struct {
	Template string
	Offset   int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("template %q: %v at offset %d", e.Template, e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TimestampError reports a timestamp that could not be read or formatted.
type TimestampError struct {
	Path   string
	Kind   TimestampKind
	Format string
	Err    error
}

func (e *TimestampError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s timestamp of %s with format %q: %v", e.Kind, e.Path, e.Format, e.Err)
	}
	return fmt.Sprintf("%s timestamp of %s: %v", e.Kind, e.Path, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// CollisionSet groups the source paths that resolve to the same destination.
// Sources may include an entry that already occupies the destination.
type CollisionSet struct {
	Destination string
	Sources     []string
}

// CollisionError reports every collision found while planning. It is always
// raised before any file is moved.
type CollisionError struct {
	Sets []CollisionSet
	Err  error
}

func (e *CollisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %d destination(s) claimed more than once", e.Err, len(e.Sets))
	for _, set := range e.Sets {
		fmt.Fprintf(&b, "\n  %s <- %s", set.Destination, strings.Join(set.Sources, ", "))
	}
	return b.String()
}

func (e *CollisionError) Unwrap() error { return e.Err }

// PathError records a failed filesystem operation on a path entity.
type PathError struct {
	Op          string
	Path        string
	Destination string
	Err         error
}

func (e *PathError) Error() string {
	if e.Destination != "" {
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Path, e.Destination, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Move is a single relocation of a path.
type Move struct {
	Source      string
	Destination string
}

// ExecutionError reports a failure after the filesystem was (possibly)
// modified. Moved lists the relocations that completed, Pending those that
// were not applied, starting with the one that failed. Nothing is rolled back.
type ExecutionError struct {
	Phase   Phase
	Moved   []Move
	Pending []Move
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed after %d move(s), %d pending: %v", e.Phase, len(e.Moved), len(e.Pending), e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) && (len(execErr.Moved) > 0 || execErr.Phase == PhaseCleaningUp) {
		return ExitPartialMutation
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrInvalidDirective),
		errors.Is(err, ErrUnterminatedCollapsedToken),
		errors.Is(err, ErrInvalidTimestampFormat),
		errors.Is(err, ErrTimestampUnavailable),
		errors.Is(err, ErrNoTimestampAvailable),
		errors.Is(err, ErrInvalidName):
		return ExitTemplateError
	case errors.Is(err, ErrCollapseCollision),
		errors.Is(err, ErrUnresolvedCollapseCollision),
		errors.Is(err, ErrRenameCollision):
		return ExitCollision
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrDestinationCollision),
		errors.Is(err, ErrNotEmpty),
		errors.Is(err, ErrPathConflict),
		errors.Is(err, ErrNotFound):
		return ExitFilesystemError
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes cobra's argument and flag validation messages.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"missing required argument",
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"flag needs an argument",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

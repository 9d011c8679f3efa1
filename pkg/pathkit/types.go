package pathkit

import (
	"fmt"
	"strings"
)

// TimestampKind selects which timestamp of a path a template token refers to.
type TimestampKind int

const (
	// TimestampCreated is the creation (birth) time.
	TimestampCreated TimestampKind = iota
	// TimestampModified is the last content modification time.
	TimestampModified
	// TimestampAccessed is the last access time.
	TimestampAccessed
	// TimestampLeast is the earliest of the readable timestamps.
	TimestampLeast
)

// String returns the lower-case name of the timestamp kind.
func (k TimestampKind) String() string {
	switch k {
	case TimestampCreated:
		return "created"
	case TimestampModified:
		return "modified"
	case TimestampAccessed:
		return "accessed"
	case TimestampLeast:
		return "least"
	default:
		return fmt.Sprintf("TimestampKind(%d)", int(k))
	}
}

// Letter returns the template letter used after %T for this kind.
func (k TimestampKind) Letter() byte {
	switch k {
	case TimestampCreated:
		return 'C'
	case TimestampModified:
		return 'M'
	case TimestampAccessed:
		return 'A'
	default:
		return 'L'
	}
}

// TimestampKindFromLetter maps a %T letter (C, M, A, L) to its kind.
func TimestampKindFromLetter(c byte) (TimestampKind, bool) {
	switch c {
	case 'C':
		return TimestampCreated, true
	case 'M':
		return TimestampModified, true
	case 'A':
		return TimestampAccessed, true
	case 'L':
		return TimestampLeast, true
	}
	return 0, false
}

// Phase identifies the stage of a collapse or rename operation.
// An operation moves through Planning, Resolving, Executing and CleaningUp
// before reaching Done, or stops in Failed.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseResolving
	PhaseExecuting
	PhaseCleaningUp
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseResolving:
		return "resolving"
	case PhaseExecuting:
		return "executing"
	case PhaseCleaningUp:
		return "cleaning up"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Mutating reports whether failures in this phase may leave the filesystem
// partially modified.
func (p Phase) Mutating() bool {
	return p == PhaseExecuting || p == PhaseCleaningUp
}

// RenamePolicy decides which collapsed files a rename template applies to.
type RenamePolicy int

const (
	// RenameMoved applies the template to every file that is relocated.
	RenameMoved RenamePolicy = iota
	// RenameCollisions applies the template only to relocated files whose
	// default destination collides with another file.
	RenameCollisions
)

func (p RenamePolicy) String() string {
	switch p {
	case RenameMoved:
		return "moved"
	case RenameCollisions:
		return "collisions"
	default:
		return fmt.Sprintf("RenamePolicy(%d)", int(p))
	}
}

// ParseRenamePolicy parses the configuration spelling of a RenamePolicy.
// An empty string selects RenameMoved.
func ParseRenamePolicy(s string) (RenamePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "moved", "all":
		return RenameMoved, nil
	case "collisions", "collisions-only":
		return RenameCollisions, nil
	}
	return 0, fmt.Errorf("unknown rename policy %q (expected moved or collisions): %w", s, ErrInvalidConfig)
}

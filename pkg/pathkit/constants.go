package pathkit

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitApprovalDenied  = 12 // User declined the planned changes
	ExitTemplateError   = 20 // Rename template could not be parsed or evaluated
	ExitCollision       = 21 // Destination names collide, nothing was changed
	ExitPartialMutation = 22 // Operation stopped after some files were moved
	ExitFilesystemError = 23 // Filesystem refused an operation
)

const (
	// DefaultSeparator joins ancestor folder names for a %C directive
	// written without an explicit [separator].
	DefaultSeparator = "_"

	// DefaultStartDepth flattens every folder below the collapse root.
	DefaultStartDepth = 0

	// ConfigFileName is the project configuration file looked up in the target folder.
	ConfigFileName = "pathkit.yaml"

	// StagingPrefix prefixes temporary names used while renaming files
	// whose destination is still occupied by another file being renamed.
	StagingPrefix = ".pathkit-"

	// DefaultForceApprovalCountdown is how long --force waits before moving
	// files, leaving a moment to press Ctrl+C.
	DefaultForceApprovalCountdown = 3 * time.Second
)

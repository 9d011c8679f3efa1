package pathkit

import "context"

// Approver handles user interaction for approval workflows, used before
// operations that move files around (collapse, bulk rename).
//
// Implementations:
//   - ForcedApprover: approves without asking (--force, non-interactive runs)
//   - InteractiveApprover: shows the planned changes and asks for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before mutating the tree under root.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - root: Folder that is about to be modified
	//   - summary: Human-readable description of the planned changes
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, root string, summary string) (bool, error)
}

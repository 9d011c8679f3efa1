package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/pathkit/internal/files/collapse"
	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/tree"
	"github.com/vvka-141/pathkit/internal/scaffold"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// RenameOptions configures RenameFiles.
type RenameOptions struct {
	Template  string
	Separator string
	// Recursive renames files in every subfolder, not only in the root
	Recursive bool
}

// Organizer is the entry point for the folder operations: collapse, bulk
// rename, tree rendering and example scaffolding. Mutating operations are
// planned first and only applied once the approver accepts the plan.
//
// Thread-Safety: NOT safe for concurrent use on overlapping folders.
type Organizer struct {
	approver pathkit.Approver
	logger   pathkit.Logger
}

// NewOrganizer creates an Organizer. Panics on nil dependencies.
func NewOrganizer(approver pathkit.Approver, logger pathkit.Logger) *Organizer {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Organizer{approver: approver, logger: logger}
}

// PlanCollapse computes a collapse without touching the filesystem.
func (o *Organizer) PlanCollapse(root *entity.Folder, opts collapse.Options) (*collapse.Plan, error) {
	return collapse.NewEngine(opts, o.logger).Plan(root)
}

// Collapse flattens root. Without a template any name collision fails the
// operation before a file is moved.
func (o *Organizer) Collapse(ctx context.Context, root *entity.Folder, opts collapse.Options) (*collapse.Result, error) {
	engine := collapse.NewEngine(opts, o.logger)

	plan, err := engine.Plan(root)
	if err != nil {
		return &collapse.Result{State: pathkit.PhaseFailed}, err
	}
	if err := o.approve(ctx, root, plan); err != nil {
		return &collapse.Result{State: pathkit.PhaseFailed, Plan: plan}, err
	}
	return engine.Apply(root, plan)
}

// PlanRename computes a bulk rename without touching the filesystem.
func (o *Organizer) PlanRename(root *entity.Folder, opts RenameOptions) (*collapse.Plan, error) {
	return o.renamer(opts).Plan(root, opts.Template, opts.Recursive)
}

// RenameFiles renames the files of root in place through opts.Template.
func (o *Organizer) RenameFiles(ctx context.Context, root *entity.Folder, opts RenameOptions) (*collapse.Result, error) {
	renamer := o.renamer(opts)

	plan, err := renamer.Plan(root, opts.Template, opts.Recursive)
	if err != nil {
		return &collapse.Result{State: pathkit.PhaseFailed}, err
	}
	if err := o.approve(ctx, root, plan); err != nil {
		return &collapse.Result{State: pathkit.PhaseFailed, Plan: plan}, err
	}
	return renamer.Apply(plan)
}

// renamer builds the bulk renamer. The project configuration file in the
// root keeps its name.
func (o *Organizer) renamer(opts RenameOptions) *collapse.Renamer {
	return collapse.NewRenamer(opts.Separator, o.logger).Keep(pathkit.ConfigFileName)
}

// Beautify renders root as a text tree. A nil printer lists everything
// without styling.
func (o *Organizer) Beautify(root *entity.Folder, printer *tree.Printer) (string, error) {
	if printer == nil {
		printer = &tree.Printer{}
	}
	if !root.Exists() {
		return "", &pathkit.PathError{Op: "tree", Path: root.Path(), Err: pathkit.ErrNotFound}
	}
	return printer.Render(root)
}

// Scaffold creates the named example layout under target.
func (o *Organizer) Scaffold(target *entity.Folder, layout string) error {
	return scaffold.NewScaffolder(o.logger).Create(target, layout)
}

func (o *Organizer) approve(ctx context.Context, root *entity.Folder, plan *collapse.Plan) error {
	if plan.Empty() {
		return nil
	}
	approved, err := o.approver.RequestApproval(ctx, root.Path(), plan.Summary())
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("changes to %s: %w", root.Path(), pathkit.ErrApprovalDenied)
	}
	return nil
}

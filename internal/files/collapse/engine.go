package collapse

import (
	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/template"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Options configures a collapse.
type Options struct {
	// Template renames relocated files. Empty means names are kept.
	Template string
	// Separator is the default separator for bare %C directives.
	Separator string
	Policy    pathkit.RenamePolicy
	// StartDepth is the number of folder levels kept below the root.
	StartDepth int
}

// Engine flattens folder trees.
type Engine struct {
	opts   Options
	parser *template.Parser
	logger pathkit.Logger
}

// NewEngine creates a collapse engine. Panics if logger is nil.
func NewEngine(opts Options, logger pathkit.Logger) *Engine {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Separator == "" {
		opts.Separator = pathkit.DefaultSeparator
	}
	return &Engine{
		opts:   opts,
		parser: template.NewParser(opts.Separator),
		logger: logger,
	}
}

// Plan computes what Collapse would do without touching the filesystem.
func (e *Engine) Plan(root *entity.Folder) (*Plan, error) {
	tmpl, err := e.template()
	if err != nil {
		return nil, err
	}

	e.logger.Verbose("Collapse %s: %s", root.Path(), pathkit.PhasePlanning)
	snap, err := TakeSnapshot(root)
	if err != nil {
		return nil, err
	}
	e.logger.Verbose("Snapshot of %s: %d file(s), %d folder(s)", root.Path(), len(snap.Files), len(snap.Dirs))

	e.logger.Verbose("Collapse %s: %s", root.Path(), pathkit.PhaseResolving)
	return BuildPlan(snap, PlanOptions{
		Template:   tmpl,
		Policy:     e.opts.Policy,
		StartDepth: e.opts.StartDepth,
	})
}

// Collapse moves every file below the start depth up into the folder at the
// start depth and removes the folders emptied by the moves. The returned
// Result is never nil.
func (e *Engine) Collapse(root *entity.Folder) (*Result, error) {
	plan, err := e.Plan(root)
	if err != nil {
		return &Result{State: pathkit.PhaseFailed}, err
	}
	return e.Apply(root, plan)
}

// Apply executes a plan computed by Plan for the same root. The tree must not
// have changed in between. The returned Result is never nil.
func (e *Engine) Apply(root *entity.Folder, plan *Plan) (*Result, error) {
	result := &Result{State: pathkit.PhaseExecuting, Plan: plan}
	x := &executor{logger: e.logger, result: result}

	e.logger.Verbose("Collapse %s: %s %d move(s)", root.Path(), result.State, len(plan.Moves))
	if err := x.move(plan); err != nil {
		return result, err
	}

	result.State = pathkit.PhaseCleaningUp
	e.logger.Verbose("Collapse %s: %s %d folder(s)", root.Path(), result.State, len(plan.Prune))
	if err := x.prune(root, plan); err != nil {
		return result, err
	}

	result.State = pathkit.PhaseDone
	e.logger.Info("Collapsed %s: moved %d file(s), removed %d folder(s)", root.Path(), len(result.Moved), len(result.Removed))
	return result, nil
}

func (e *Engine) template() (*template.Template, error) {
	if err := template.CheckSeparator(e.opts.Separator); err != nil {
		return nil, err
	}
	if e.opts.Template == "" {
		return nil, nil
	}
	return e.parser.Parse(e.opts.Template)
}

package collapse

import (
	"path"
	"path/filepath"
	"slices"
	"sort"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/template"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Renamer renames files in place through a rename template.
type Renamer struct {
	parser *template.Parser
	logger pathkit.Logger
	// keep holds root-relative, slash-separated paths that are never renamed
	keep map[string]bool
}

// NewRenamer creates a renamer whose bare %C directives join with separator.
// Panics if logger is nil.
func NewRenamer(separator string, logger pathkit.Logger) *Renamer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if separator == "" {
		separator = pathkit.DefaultSeparator
	}
	return &Renamer{parser: template.NewParser(separator), logger: logger}
}

// Keep excludes the given root-relative, slash-separated paths from renaming.
// They still occupy their names.
func (r *Renamer) Keep(paths ...string) *Renamer {
	if r.keep == nil {
		r.keep = make(map[string]bool, len(paths))
	}
	for _, p := range paths {
		r.keep[p] = true
	}
	return r
}

// Plan computes the renames without touching the filesystem. Only the files
// directly in root take part unless recursive is set; %C then expands to the
// folders between root and the file.
func (r *Renamer) Plan(root *entity.Folder, tmpl string, recursive bool) (*Plan, error) {
	t, err := r.parser.Parse(tmpl)
	if err != nil {
		return nil, err
	}

	snap, err := TakeSnapshot(root)
	if err != nil {
		return nil, err
	}

	// Paths that stay where they are while the renames run
	occupied := make(map[string]bool)
	for _, dir := range snap.Dirs {
		occupied[dir.Path] = true
	}

	plan := &Plan{Root: root.Path()}
	claims := make(map[string][]string)
	for _, rec := range snap.Files {
		if !recursive && len(rec.Ancestors) > 0 {
			occupied[rec.Path] = true
			continue
		}
		if r.keep[path.Join(append(append([]string{}, rec.Ancestors...), rec.Base())...)] {
			occupied[rec.Path] = true
			continue
		}
		name, err := t.Evaluate(rec.File, rec.Ancestors)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(filepath.Dir(rec.Path), name)
		claims[dest] = append(claims[dest], rec.Path)
		if dest == rec.Path {
			occupied[rec.Path] = true
			continue
		}
		plan.Moves = append(plan.Moves, PlannedMove{
			Move:      pathkit.Move{Source: rec.Path, Destination: dest},
			File:      rec.File,
			Ancestors: rec.Ancestors,
			Renamed:   true,
		})
	}

	if sets := renameCollisions(claims, occupied); len(sets) > 0 {
		return nil, &pathkit.CollisionError{Sets: sets, Err: pathkit.ErrRenameCollision}
	}

	sortMoves(plan.Moves)
	return plan, nil
}

// Rename applies the template to the files of root. The returned Result is
// never nil.
func (r *Renamer) Rename(root *entity.Folder, tmpl string, recursive bool) (*Result, error) {
	plan, err := r.Plan(root, tmpl, recursive)
	if err != nil {
		return &Result{State: pathkit.PhaseFailed}, err
	}
	return r.Apply(plan)
}

// Apply executes a plan computed by Plan. The returned Result is never nil.
func (r *Renamer) Apply(plan *Plan) (*Result, error) {
	result := &Result{State: pathkit.PhaseExecuting, Plan: plan}

	r.logger.Verbose("Rename in %s: %s %d move(s)", plan.Root, result.State, len(plan.Moves))
	x := &executor{logger: r.logger, result: result}
	if err := x.move(plan); err != nil {
		return result, err
	}

	result.State = pathkit.PhaseDone
	r.logger.Info("Renamed %d file(s) in %s", len(result.Moved), plan.Root)
	return result, nil
}

// renameCollisions reports destinations claimed by several files, or by a
// file and something that stays in place.
func renameCollisions(claims map[string][]string, occupied map[string]bool) []pathkit.CollisionSet {
	dests := make([]string, 0, len(claims))
	for dest := range claims {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	var sets []pathkit.CollisionSet
	for _, dest := range dests {
		sources := claims[dest]
		if len(sources) == 1 && (!occupied[dest] || sources[0] == dest) {
			continue
		}
		claimants := append([]string(nil), sources...)
		if occupied[dest] && !slices.Contains(claimants, dest) {
			claimants = append(claimants, dest)
		}
		sort.Strings(claimants)
		sets = append(sets, pathkit.CollisionSet{Destination: dest, Sources: claimants})
	}
	return sets
}

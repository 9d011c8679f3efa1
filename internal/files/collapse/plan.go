package collapse

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/template"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// PlannedMove is one relocation of a Plan.
type PlannedMove struct {
	pathkit.Move
	File *entity.File
	// Ancestors is the chain handed to the rename template
	Ancestors []string
	// Renamed is set when the destination name differs from the original name
	Renamed bool
}

// Plan is the immutable outcome of planning and resolving. Executing it is
// the only step that touches the filesystem.
type Plan struct {
	Root  string
	Moves []PlannedMove
	// Prune lists the folders removed after the moves, deepest first
	Prune []string
}

// Empty reports whether executing the plan would change nothing.
func (p *Plan) Empty() bool {
	return len(p.Moves) == 0 && len(p.Prune) == 0
}

// Summary describes the plan with paths relative to the root.
func (p *Plan) Summary() string {
	if p.Empty() {
		return "nothing to do"
	}
	var b strings.Builder
	for _, mv := range p.Moves {
		fmt.Fprintf(&b, "move   %s -> %s\n", p.rel(mv.Source), p.rel(mv.Destination))
	}
	for _, dir := range p.Prune {
		fmt.Fprintf(&b, "remove %s/\n", p.rel(dir))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (p *Plan) rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// PlanOptions configures collapse planning.
type PlanOptions struct {
	// Template renames relocated files; nil means names are kept and any
	// collision fails the plan
	Template *template.Template
	// Policy selects which relocated files the template applies to
	Policy pathkit.RenamePolicy
	// StartDepth keeps this many folder levels; 0 flattens into the root
	StartDepth int
}

type candidate struct {
	record    FileRecord
	targetDir string
	chain     []string
	dest      string
	renamed   bool
}

// BuildPlan computes the moves that flatten snap. It reads timestamps when
// the template needs them but never modifies the filesystem.
func BuildPlan(snap *Snapshot, opts PlanOptions) (*Plan, error) {
	if opts.StartDepth < 0 {
		return nil, fmt.Errorf("start depth %d: %w", opts.StartDepth, pathkit.ErrInvalidConfig)
	}
	root := snap.Root.Path()

	// Entries that exist while the moves run and never move themselves
	occupants := make(map[string][]string)
	for _, dir := range snap.Dirs {
		occupants[dir.Path] = append(occupants[dir.Path], dir.Path)
	}

	var moving []*candidate
	for _, rec := range snap.Files {
		if len(rec.Ancestors) <= opts.StartDepth {
			occupants[rec.Path] = append(occupants[rec.Path], rec.Path)
			continue
		}
		targetDir := filepath.Join(append([]string{root}, rec.Ancestors[:opts.StartDepth]...)...)
		moving = append(moving, &candidate{
			record:    rec,
			targetDir: targetDir,
			chain:     rec.Ancestors[opts.StartDepth:],
			dest:      filepath.Join(targetDir, rec.Base()),
		})
	}

	collisions := findCollisions(moving, occupants)
	if len(collisions) > 0 && opts.Template == nil {
		return nil, &pathkit.CollisionError{Sets: collisionSets(moving, occupants, collisions), Err: pathkit.ErrCollapseCollision}
	}

	if opts.Template != nil {
		for _, c := range moving {
			if opts.Policy == pathkit.RenameCollisions && !collisions[c.dest] {
				continue
			}
			name, err := opts.Template.Evaluate(c.record.File, c.chain)
			if err != nil {
				return nil, err
			}
			c.dest = filepath.Join(c.targetDir, name)
			c.renamed = name != c.record.Base()
		}

		if residual := findCollisions(moving, occupants); len(residual) > 0 {
			return nil, &pathkit.CollisionError{Sets: collisionSets(moving, occupants, residual), Err: pathkit.ErrUnresolvedCollapseCollision}
		}
	}

	plan := &Plan{Root: root}
	for _, c := range moving {
		plan.Moves = append(plan.Moves, PlannedMove{
			Move:      pathkit.Move{Source: c.record.Path, Destination: c.dest},
			File:      c.record.File,
			Ancestors: c.chain,
			Renamed:   c.renamed,
		})
	}
	sortMoves(plan.Moves)

	var prune []DirRecord
	for _, dir := range snap.Dirs {
		if dir.Depth > opts.StartDepth {
			prune = append(prune, dir)
		}
	}
	sort.Slice(prune, func(i, j int) bool {
		if prune[i].Depth != prune[j].Depth {
			return prune[i].Depth > prune[j].Depth
		}
		return prune[i].Path > prune[j].Path
	})
	for _, dir := range prune {
		plan.Prune = append(plan.Prune, dir.Path)
	}

	return plan, nil
}

// findCollisions returns the destinations claimed by more than one moving
// file, or by a moving file and an occupant.
func findCollisions(moving []*candidate, occupants map[string][]string) map[string]bool {
	claims := make(map[string]int)
	for _, c := range moving {
		claims[c.dest]++
	}
	collisions := make(map[string]bool)
	for dest, n := range claims {
		if n+len(occupants[dest]) > 1 {
			collisions[dest] = true
		}
	}
	return collisions
}

func collisionSets(moving []*candidate, occupants map[string][]string, collisions map[string]bool) []pathkit.CollisionSet {
	sources := make(map[string][]string)
	for _, c := range moving {
		if collisions[c.dest] {
			sources[c.dest] = append(sources[c.dest], c.record.Path)
		}
	}

	sets := make([]pathkit.CollisionSet, 0, len(collisions))
	for dest := range collisions {
		claimants := append(append([]string{}, occupants[dest]...), sources[dest]...)
		sort.Strings(claimants)
		sets = append(sets, pathkit.CollisionSet{Destination: dest, Sources: claimants})
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Destination < sets[j].Destination
	})
	return sets
}

func sortMoves(moves []PlannedMove) {
	sort.Slice(moves, func(i, j int) bool {
		return moves[i].Source < moves[j].Source
	})
}

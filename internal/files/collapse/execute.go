package collapse

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Result describes what an operation did to the filesystem.
type Result struct {
	// State is PhaseDone on success, PhaseFailed otherwise
	State pathkit.Phase
	Plan  *Plan
	// Moved lists the relocations that completed, in execution order
	Moved []pathkit.Move
	// Removed lists the folders removed during cleanup
	Removed []string
}

// executor applies a plan one move at a time.
type executor struct {
	logger pathkit.Logger
	result *Result
}

// move applies every planned move. Moves whose destination is the source of
// another move are first parked under a staging name in their own folder, so
// swaps and chains never overwrite a file that has not moved yet.
func (x *executor) move(plan *Plan) error {
	sources := make(map[string]bool, len(plan.Moves))
	for _, mv := range plan.Moves {
		sources[mv.Source] = true
	}

	var direct, staged []PlannedMove
	for _, mv := range plan.Moves {
		if sources[mv.Destination] {
			staged = append(staged, mv)
		} else {
			direct = append(direct, mv)
		}
	}

	// finals are the staged moves still owed, with Source at the parked name
	// once parking succeeded
	finals := make([]pathkit.Move, len(staged))
	for i, mv := range staged {
		finals[i] = mv.Move
	}

	for i, mv := range staged {
		parked := filepath.Join(filepath.Dir(mv.Source), pathkit.StagingPrefix+uuid.NewString())
		if err := x.apply(mv.File, pathkit.Move{Source: mv.Source, Destination: parked}); err != nil {
			return x.fail(err, finals[i:], moves(direct), finals[:i])
		}
		finals[i].Source = parked
	}
	for i, mv := range direct {
		if err := x.apply(mv.File, mv.Move); err != nil {
			return x.fail(err, moves(direct[i:]), finals)
		}
	}
	for i, mv := range staged {
		if err := x.apply(mv.File, finals[i]); err != nil {
			return x.fail(err, finals[i:])
		}
	}
	return nil
}

func moves(planned []PlannedMove) []pathkit.Move {
	out := make([]pathkit.Move, 0, len(planned))
	for _, mv := range planned {
		out = append(out, mv.Move)
	}
	return out
}

func (x *executor) apply(f *entity.File, mv pathkit.Move) error {
	x.logger.Verbose("Moving %s -> %s", mv.Source, mv.Destination)
	if err := f.Move(mv.Destination); err != nil {
		return err
	}
	x.result.Moved = append(x.result.Moved, mv)
	return nil
}

// fail reports the moves that completed and, in order, those still pending.
// The first pending move is the one that failed.
func (x *executor) fail(err error, pending ...[]pathkit.Move) error {
	var rest []pathkit.Move
	for _, p := range pending {
		rest = append(rest, p...)
	}
	x.result.State = pathkit.PhaseFailed
	return &pathkit.ExecutionError{
		Phase:   pathkit.PhaseExecuting,
		Moved:   append([]pathkit.Move(nil), x.result.Moved...),
		Pending: rest,
		Err:     err,
	}
}

// prune removes the planned folders deepest first. Folders that are not
// empty when their turn comes are left in place.
func (x *executor) prune(root *entity.Folder, plan *Plan) error {
	fsys := root.FileSystem()
	for _, dir := range plan.Prune {
		if dir == root.Path() {
			continue
		}
		folder := entity.NewFolder(fsys, dir)
		empty, err := folder.IsEmpty()
		if err == nil && !empty {
			x.logger.Info("Keeping non-empty folder %s", dir)
			continue
		}
		if err == nil {
			err = folder.Delete(false)
		}
		if err != nil {
			x.result.State = pathkit.PhaseFailed
			return &pathkit.ExecutionError{
				Phase: pathkit.PhaseCleaningUp,
				Moved: append([]pathkit.Move(nil), x.result.Moved...),
				Err:   err,
			}
		}
		x.logger.Verbose("Removed folder %s", dir)
		x.result.Removed = append(x.result.Removed, dir)
	}
	return nil
}

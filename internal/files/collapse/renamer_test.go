package collapse

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

func newRenamer() *Renamer {
	return NewRenamer("", logging.Discard)
}

func TestRename_Timestamp(t *testing.T) {
	mfs, root := newTree()
	mfs.AddFileWithTime("a.txt", "", time.Date(2019, time.June, 10, 12, 0, 0, 0, time.UTC))

	result, err := newRenamer().Rename(root, "%B %TCd-%TCb-%TCY%E", false)
	require.NoError(t, err)

	assert.Equal(t, pathkit.PhaseDone, result.State)
	assert.Equal(t, []string{"a 10-Jun-2019.txt"}, mfs.List())
}

func TestRename_NonRecursive(t *testing.T) {
	mfs, root := newTree("a.txt", "sub/b.txt")

	_, err := newRenamer().Rename(root, "x-%B%E", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/", "sub/b.txt", "x-a.txt"}, mfs.List())
}

func TestRename_Recursive(t *testing.T) {
	mfs, root := newTree("a.txt", "sub/b.txt", "sub/deep/c.txt")

	_, err := newRenamer().Rename(root, "%C[.]%B%E", true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.txt",
		"sub/",
		"sub/deep/",
		"sub/deep/sub.deepc.txt",
		"sub/subb.txt",
	}, mfs.List())
}

func TestRename_Keep(t *testing.T) {
	mfs, root := newTree("a.txt", "keep.txt", "sub/keep.txt", "sub/b.txt")

	_, err := newRenamer().Keep("keep.txt", "sub/b.txt").Rename(root, "x-%B%E", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt", "sub/", "sub/b.txt", "sub/x-keep.txt", "x-a.txt"}, mfs.List())
}

func TestRename_KeptFileStillOccupiesItsName(t *testing.T) {
	mfs, root := newTree("a.txt", "b.txt")

	_, err := newRenamer().Keep("b.txt").Rename(root, "b%E", false)
	assert.ErrorIs(t, err, pathkit.ErrRenameCollision)
	assert.Equal(t, []string{"a.txt", "b.txt"}, mfs.List())
}

func TestRename_ConfigFileNameIsNotSpecial(t *testing.T) {
	mfs, root := newTree(pathkit.ConfigFileName)

	_, err := newRenamer().Rename(root, "x-%B%E", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"x-pathkit.yaml"}, mfs.List())
}

func TestRename_UnchangedNamesAreSkipped(t *testing.T) {
	mfs, root := newTree("a.txt", "b.txt")

	result, err := newRenamer().Rename(root, "%B%E", false)
	require.NoError(t, err)
	assert.Empty(t, result.Moved)
	assert.Equal(t, []string{"a.txt", "b.txt"}, mfs.List())
}

func TestRename_Collision(t *testing.T) {
	mfs, root := newTree("a.txt", "a.md")
	before := mfs.List()

	_, err := newRenamer().Rename(root, "%B", false)
	assert.ErrorIs(t, err, pathkit.ErrRenameCollision)

	var collision *pathkit.CollisionError
	require.True(t, errors.As(err, &collision))
	require.Len(t, collision.Sets, 1)
	assert.Equal(t, "/example/a", collision.Sets[0].Destination)
	assert.Equal(t, []string{"/example/a.md", "/example/a.txt"}, collision.Sets[0].Sources)
	assert.Equal(t, before, mfs.List())
}

func TestRename_CollisionWithStationaryEntry(t *testing.T) {
	mfs, root := newTree("a.txt", "a/")

	_, err := newRenamer().Rename(root, "%B", false)
	assert.ErrorIs(t, err, pathkit.ErrRenameCollision)
	assert.Equal(t, []string{"a.txt", "a/"}, mfs.List())
}

func TestExecutor_Swap(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/example")
	mfs.AddFile("a.txt", "A")
	mfs.AddFile("b.txt", "B")
	a := entity.NewFile(mfs, "/example/a.txt")
	b := entity.NewFile(mfs, "/example/b.txt")

	plan := &Plan{Root: "/example", Moves: []PlannedMove{
		{Move: pathkit.Move{Source: a.Path(), Destination: b.Path()}, File: a},
		{Move: pathkit.Move{Source: b.Path(), Destination: a.Path()}, File: b},
	}}

	result := &Result{}
	x := &executor{logger: logging.NewNullLogger(), result: result}
	require.NoError(t, x.move(plan))

	assert.Equal(t, "/example/b.txt", a.Path())
	assert.Equal(t, "/example/a.txt", b.Path())
	assert.Equal(t, []string{"a.txt", "b.txt"}, mfs.List())
	require.Len(t, result.Moved, 4, "both files pass through a staging name")
	for _, mv := range result.Moved[:2] {
		assert.Contains(t, mv.Destination, pathkit.StagingPrefix)
	}
}

func TestExecutor_Chain(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/example")
	mfs.AddFile("1", "")
	mfs.AddFile("2", "")
	one := entity.NewFile(mfs, "/example/1")
	two := entity.NewFile(mfs, "/example/2")

	plan := &Plan{Root: "/example", Moves: []PlannedMove{
		{Move: pathkit.Move{Source: "/example/1", Destination: "/example/2"}, File: one},
		{Move: pathkit.Move{Source: "/example/2", Destination: "/example/3"}, File: two},
	}}

	x := &executor{logger: logging.NewNullLogger(), result: &Result{}}
	require.NoError(t, x.move(plan))

	assert.Equal(t, []string{"2", "3"}, mfs.List())
	for _, name := range mfs.List() {
		assert.False(t, strings.HasPrefix(name, pathkit.StagingPrefix))
	}
}

func swapPlan(mfs *filesystem.MemoryFileSystem, extra ...pathkit.Move) *Plan {
	a := entity.NewFile(mfs, "/example/a.txt")
	b := entity.NewFile(mfs, "/example/b.txt")
	plan := &Plan{Root: "/example", Moves: []PlannedMove{
		{Move: pathkit.Move{Source: a.Path(), Destination: b.Path()}, File: a},
		{Move: pathkit.Move{Source: b.Path(), Destination: a.Path()}, File: b},
	}}
	for _, mv := range extra {
		plan.Moves = append(plan.Moves, PlannedMove{Move: mv, File: entity.NewFile(mfs, mv.Source)})
	}
	return plan
}

func TestExecutor_SwapFailsWhileParking(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/example")
	mfs.AddFile("a.txt", "A")
	mfs.AddFile("b.txt", "B")
	mfs.FailOn("rename", "/example/b.txt", fs.ErrPermission)

	x := &executor{logger: logging.NewNullLogger(), result: &Result{}}
	err := x.move(swapPlan(mfs))

	var execErr *pathkit.ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Len(t, execErr.Moved, 1)
	parked := execErr.Moved[0].Destination
	assert.Equal(t, "/example/a.txt", execErr.Moved[0].Source)
	assert.Contains(t, parked, pathkit.StagingPrefix)

	assert.Equal(t, []pathkit.Move{
		{Source: "/example/b.txt", Destination: "/example/a.txt"},
		{Source: parked, Destination: "/example/b.txt"},
	}, execErr.Pending, "the parked file still owes its move")

	for _, mv := range execErr.Pending {
		_, err := mfs.Stat(mv.Source)
		assert.NoError(t, err, "pending source %s must exist", mv.Source)
	}
}

func TestExecutor_DirectMoveFailsAfterParking(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/example")
	mfs.AddFile("a.txt", "A")
	mfs.AddFile("b.txt", "B")
	mfs.AddFile("c.txt", "C")
	mfs.FailOn("rename", "/example/c.txt", fs.ErrPermission)

	x := &executor{logger: logging.NewNullLogger(), result: &Result{}}
	err := x.move(swapPlan(mfs, pathkit.Move{Source: "/example/c.txt", Destination: "/example/d.txt"}))

	var execErr *pathkit.ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Len(t, execErr.Moved, 2, "both swap members were parked")
	require.Len(t, execErr.Pending, 3)

	assert.Equal(t, pathkit.Move{Source: "/example/c.txt", Destination: "/example/d.txt"}, execErr.Pending[0])
	assert.Equal(t, pathkit.Move{Source: execErr.Moved[0].Destination, Destination: "/example/b.txt"}, execErr.Pending[1])
	assert.Equal(t, pathkit.Move{Source: execErr.Moved[1].Destination, Destination: "/example/a.txt"}, execErr.Pending[2])
	for _, mv := range execErr.Pending {
		_, err := mfs.Stat(mv.Source)
		assert.NoError(t, err, "pending source %s must exist", mv.Source)
	}
}

func TestRename_PartialFailure(t *testing.T) {
	mfs, root := newTree("a.txt", "b.txt")
	mfs.FailOn("rename", "/example/b.txt", fs.ErrPermission)

	result, err := newRenamer().Rename(root, "new-%B%E", false)

	var execErr *pathkit.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, []pathkit.Move{{Source: "/example/a.txt", Destination: "/example/new-a.txt"}}, execErr.Moved)
	assert.Len(t, execErr.Pending, 1)
	assert.Equal(t, pathkit.PhaseFailed, result.State)
	assert.Equal(t, []string{"b.txt", "new-a.txt"}, mfs.List())
}

func TestRename_InvalidName(t *testing.T) {
	mfs, root := newTree("a.txt")

	_, err := newRenamer().Rename(root, "sub/%B", false)
	assert.ErrorIs(t, err, pathkit.ErrInvalidName)
	assert.Equal(t, []string{"a.txt"}, mfs.List())
}

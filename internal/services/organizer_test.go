package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pathkit/internal/files/collapse"
	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/internal/files/tree"
	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

type mockApprover struct {
	approved bool
	err      error
	calls    int
	summary  string
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string, summary string) (bool, error) {
	m.calls++
	m.summary = summary
	return m.approved, m.err
}

func newOrganizer(approver pathkit.Approver) *Organizer {
	return NewOrganizer(approver, logging.NewNullLogger())
}

func exampleTree(files ...string) (*filesystem.MemoryFileSystem, *entity.Folder) {
	mfs := filesystem.NewMemoryFileSystem("/example")
	for _, f := range files {
		mfs.AddFile(f, "")
	}
	return mfs, entity.NewFolder(mfs, "/example")
}

func TestNewOrganizer_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewOrganizer(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewOrganizer(&mockApprover{}, nil) })
}

func TestOrganizer_Collapse(t *testing.T) {
	mfs, root := exampleTree("a.txt", "test/a.txt", "test/b.txt", "test/temp/c.txt")
	approver := &mockApprover{approved: true}

	result, err := newOrganizer(approver).Collapse(context.Background(), root, collapse.Options{Template: "%B %C[-]%E"})
	require.NoError(t, err)

	assert.Equal(t, pathkit.PhaseDone, result.State)
	assert.Equal(t, 1, approver.calls)
	assert.Contains(t, approver.summary, "test/temp/c.txt -> c test-temp.txt")
	assert.Equal(t, []string{"a test.txt", "a.txt", "b test.txt", "c test-temp.txt"}, mfs.List())
}

func TestOrganizer_CollapseDenied(t *testing.T) {
	mfs, root := exampleTree("test/b.txt")
	before := mfs.List()

	result, err := newOrganizer(&mockApprover{approved: false}).Collapse(context.Background(), root, collapse.Options{})
	assert.ErrorIs(t, err, pathkit.ErrApprovalDenied)
	assert.Equal(t, pathkit.ExitApprovalDenied, pathkit.ExitCodeForError(err))
	assert.Equal(t, pathkit.PhaseFailed, result.State)
	assert.NotNil(t, result.Plan)
	assert.Equal(t, before, mfs.List())
}

func TestOrganizer_CollapseApproverError(t *testing.T) {
	_, root := exampleTree("test/b.txt")
	boom := errors.New("boom")

	_, err := newOrganizer(&mockApprover{err: boom}).Collapse(context.Background(), root, collapse.Options{})
	assert.ErrorIs(t, err, boom)
}

func TestOrganizer_CollapseCollisionSkipsApproval(t *testing.T) {
	_, root := exampleTree("a.txt", "test/a.txt")
	approver := &mockApprover{approved: true}

	_, err := newOrganizer(approver).Collapse(context.Background(), root, collapse.Options{})
	assert.ErrorIs(t, err, pathkit.ErrCollapseCollision)
	assert.Zero(t, approver.calls)
}

func TestOrganizer_NothingToDoSkipsApproval(t *testing.T) {
	_, root := exampleTree("a.txt", "b.txt")
	approver := &mockApprover{}

	result, err := newOrganizer(approver).Collapse(context.Background(), root, collapse.Options{})
	require.NoError(t, err)
	assert.Equal(t, pathkit.PhaseDone, result.State)
	assert.Zero(t, approver.calls)
}

func TestOrganizer_PlanCollapse(t *testing.T) {
	mfs, root := exampleTree("a.txt", "test/b.txt")

	plan, err := newOrganizer(&mockApprover{}).PlanCollapse(root, collapse.Options{})
	require.NoError(t, err)
	assert.Len(t, plan.Moves, 1)
	assert.Equal(t, []string{"a.txt", "test/", "test/b.txt"}, mfs.List())
}

func TestOrganizer_RenameFiles(t *testing.T) {
	mfs, root := exampleTree()
	mfs.AddFileWithTime("a.txt", "", time.Date(2019, time.June, 10, 9, 30, 0, 0, time.UTC))

	result, err := newOrganizer(&mockApprover{approved: true}).RenameFiles(context.Background(), root, RenameOptions{
		Template: "%B %TCd-%TCb-%TCY%E",
	})
	require.NoError(t, err)
	assert.Equal(t, pathkit.PhaseDone, result.State)
	assert.Equal(t, []string{"a 10-Jun-2019.txt"}, mfs.List())
}

func TestOrganizer_RenameFilesKeepsProjectConfig(t *testing.T) {
	mfs, root := exampleTree("a.txt", pathkit.ConfigFileName, "sub/"+pathkit.ConfigFileName)

	_, err := newOrganizer(&mockApprover{approved: true}).RenameFiles(context.Background(), root, RenameOptions{
		Template:  "x-%B%E",
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{pathkit.ConfigFileName, "sub/", "sub/x-pathkit.yaml", "x-a.txt"}, mfs.List())
}

func TestOrganizer_RenameFilesDenied(t *testing.T) {
	mfs, root := exampleTree("a.txt")

	_, err := newOrganizer(&mockApprover{}).RenameFiles(context.Background(), root, RenameOptions{Template: "x%B%E"})
	assert.ErrorIs(t, err, pathkit.ErrApprovalDenied)
	assert.Equal(t, []string{"a.txt"}, mfs.List())
}

func TestOrganizer_PlanRename(t *testing.T) {
	_, root := exampleTree("a.txt", "sub/b.txt")

	plan, err := newOrganizer(&mockApprover{}).PlanRename(root, RenameOptions{Template: "%C[-]%B%E", Separator: "-", Recursive: true})
	require.NoError(t, err)
	require.Len(t, plan.Moves, 1)
	assert.Equal(t, "/example/sub/subb.txt", plan.Moves[0].Destination)
}

func TestOrganizer_Beautify(t *testing.T) {
	_, root := exampleTree("a.txt", "test/b.txt")
	org := newOrganizer(&mockApprover{})

	out, err := org.Beautify(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "example\n├── a.txt\n└── test\n    └── b.txt\n", out)

	out, err = org.Beautify(root, &tree.Printer{MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, "example\n├── a.txt\n└── test\n", out)
}

func TestOrganizer_BeautifyMissing(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/example")

	_, err := newOrganizer(&mockApprover{}).Beautify(entity.NewFolder(mfs, "/example/missing"), nil)
	assert.ErrorIs(t, err, pathkit.ErrNotFound)
}

func TestOrganizer_ScaffoldThenCollapse(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	target := entity.NewFolder(mfs, "/work/example")
	org := newOrganizer(&mockApprover{approved: true})

	require.NoError(t, org.Scaffold(target, "basic"))
	_, err := org.Collapse(context.Background(), target, collapse.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"example/", "example/a.txt", "example/b.txt", "example/c.txt"}, mfs.List())
}

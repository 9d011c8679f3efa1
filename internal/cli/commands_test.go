package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// executeCommand runs the root command with args and fresh flag values.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envTemplate, "")
	t.Setenv(envSeparator, "")

	resetFlags(rootCmd)
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}

// listTree returns the slash-separated relative paths below dir, folders with a trailing slash.
func listTree(t *testing.T, dir string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		rel, _ := filepath.Rel(dir, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		paths = append(paths, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)
	return paths
}

func newExampleDir(t *testing.T, layout string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "example")
	_, err := executeCommand(t, "example", dir, "--layout", layout)
	require.NoError(t, err)
	return dir
}

func TestExampleCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "example")

	out, err := executeCommand(t, "example", dir)
	require.NoError(t, err)

	assert.Equal(t, "example\n"+
		"├── a.txt\n"+
		"└── test\n"+
		"    ├── b.txt\n"+
		"    └── temp\n"+
		"        └── c.txt\n", out)
	assert.Equal(t, []string{"a.txt", "test/", "test/b.txt", "test/temp/", "test/temp/c.txt"}, listTree(t, dir))
}

func TestExampleCmd_NonEmptyTarget(t *testing.T) {
	dir := newExampleDir(t, "basic")

	_, err := executeCommand(t, "example", dir)
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitFilesystemError, pathkit.ExitCodeForError(err))
}

func TestExampleCmd_UnknownLayout(t *testing.T) {
	_, err := executeCommand(t, "example", filepath.Join(t.TempDir(), "x"), "--layout", "bogus")
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitConfigError, pathkit.ExitCodeForError(err))
}

func TestCollapseCmd_NonexistentPath(t *testing.T) {
	_, err := executeCommand(t, "collapse", "/nonexistent/path/abc123")
	require.Error(t, err)
	assert.ErrorIs(t, err, pathkit.ErrNotFound)
	assert.Equal(t, pathkit.ExitFilesystemError, pathkit.ExitCodeForError(err))
}

func TestCollapseCmd_FileInsteadOfFolder(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := executeCommand(t, "collapse", file)
	assert.ErrorIs(t, err, pathkit.ErrPathConflict)
}

func TestCollapseCmd_DryRun(t *testing.T) {
	dir := newExampleDir(t, "basic")
	before := listTree(t, dir)

	out, err := executeCommand(t, "collapse", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "move   test/b.txt -> b.txt\n")
	assert.Contains(t, out, "move   test/temp/c.txt -> c.txt\n")
	assert.Contains(t, out, "remove test/temp/\n")
	assert.Contains(t, out, "remove test/\n")
	assert.Equal(t, before, listTree(t, dir), "dry run must not touch the tree")
}

func TestCollapseCmd_DryRunWithTemplate(t *testing.T) {
	dir := newExampleDir(t, "basic")

	out, err := executeCommand(t, "collapse", dir, "--dry-run", "--template", "%B %C[-]%E")
	require.NoError(t, err)

	assert.Contains(t, out, "move   test/b.txt -> b test.txt\n")
	assert.Contains(t, out, "move   test/temp/c.txt -> c test-temp.txt\n")
}

func TestCollapseCmd_CollisionLeavesTreeUntouched(t *testing.T) {
	dir := newExampleDir(t, "collisions")
	before := listTree(t, dir)

	_, err := executeCommand(t, "collapse", dir, "--force")
	require.Error(t, err)
	assert.ErrorIs(t, err, pathkit.ErrCollapseCollision)
	assert.Equal(t, pathkit.ExitCollision, pathkit.ExitCodeForError(err))
	assert.Equal(t, before, listTree(t, dir))
}

func TestCollapseCmd_InvalidTemplate(t *testing.T) {
	dir := newExampleDir(t, "basic")

	_, err := executeCommand(t, "collapse", dir, "--dry-run", "--template", "%Q")
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitTemplateError, pathkit.ExitCodeForError(err))
}

func TestCollapseCmd_NegativeStartDepth(t *testing.T) {
	dir := newExampleDir(t, "basic")

	_, err := executeCommand(t, "collapse", dir, "--dry-run", "--start-depth", "-1")
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitConfigError, pathkit.ExitCodeForError(err))
}

func TestCollapseCmd_BracketSeparator(t *testing.T) {
	dir := newExampleDir(t, "basic")

	_, err := executeCommand(t, "collapse", dir, "--dry-run", "--separator", "]")
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitConfigError, pathkit.ExitCodeForError(err))
}

func TestCollapseCmd_StartDepth(t *testing.T) {
	dir := newExampleDir(t, "basic")

	out, err := executeCommand(t, "collapse", dir, "--dry-run", "--start-depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "move   test/temp/c.txt -> test/c.txt\nremove test/temp/\n", out)
}

func TestRenameCmd_MissingTemplate(t *testing.T) {
	dir := newExampleDir(t, "basic")

	_, err := executeCommand(t, "rename", dir)
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitConfigError, pathkit.ExitCodeForError(err))
}

func TestRenameCmd_DryRun(t *testing.T) {
	dir := newExampleDir(t, "basic")

	out, err := executeCommand(t, "rename", dir, "--dry-run", "--template", "x-%B%E")
	require.NoError(t, err)
	assert.Equal(t, "move   a.txt -> x-a.txt\n", out)

	out, err = executeCommand(t, "rename", dir, "--dry-run", "--recursive", "--template", "x-%B%E")
	require.NoError(t, err)
	assert.Equal(t, "move   a.txt -> x-a.txt\n"+
		"move   test/b.txt -> test/x-b.txt\n"+
		"move   test/temp/c.txt -> test/temp/x-c.txt\n", out)
}

func TestRenameCmd_Collision(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	_, err := executeCommand(t, "rename", dir, "--force", "--template", "same")
	require.Error(t, err)
	assert.ErrorIs(t, err, pathkit.ErrRenameCollision)
	assert.Equal(t, []string{"a.txt", "b.txt"}, listTree(t, dir))
}

func TestTreeCmd_Depth(t *testing.T) {
	dir := newExampleDir(t, "nested")

	out, err := executeCommand(t, "tree", dir, "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "example\n└── test\n", out)
}

func TestConfigPrecedence(t *testing.T) {
	dir := newExampleDir(t, "basic")
	yaml := "collapse:\n  template: \"yaml-%B%E\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, pathkit.ConfigFileName), []byte(yaml), 0o644))

	firstMove := func(out string) string {
		return strings.SplitN(out, "\n", 2)[0]
	}

	t.Run("pathkit.yaml", func(t *testing.T) {
		out, err := executeCommand(t, "collapse", dir, "--dry-run")
		require.NoError(t, err)
		assert.Equal(t, "move   test/b.txt -> yaml-b.txt", firstMove(out))
	})

	t.Run("flag over pathkit.yaml", func(t *testing.T) {
		out, err := executeCommand(t, "collapse", dir, "--dry-run", "--template", "flag-%B%E")
		require.NoError(t, err)
		assert.Equal(t, "move   test/b.txt -> flag-b.txt", firstMove(out))
	})
}

func TestConfigPrecedence_Environment(t *testing.T) {
	cfgDir := newExampleDir(t, "basic")
	yaml := "collapse:\n  template: \"yaml-%B%E\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, pathkit.ConfigFileName), []byte(yaml), 0o644))

	resetFlags(collapseCmd)
	require.NoError(t, collapseCmd.ParseFlags([]string{}))
	t.Setenv(envTemplate, "env-%B%E")

	cfg, err := loadProjectConfig(cfgDir)
	require.NoError(t, err)
	opts, err := resolveCollapseOptions(collapseCmd, collapseFlags, cfg)
	require.NoError(t, err)
	assert.Equal(t, "env-%B%E", opts.Template)
	assert.Equal(t, pathkit.RenameMoved, opts.Policy)

	require.NoError(t, collapseCmd.Flags().Set("template", "flag-%B%E"))
	require.NoError(t, collapseCmd.Flags().Set("rename-collisions-only", "true"))
	t.Cleanup(func() { resetFlags(collapseCmd) })

	opts, err = resolveCollapseOptions(collapseCmd, collapseFlags, cfg)
	require.NoError(t, err)
	assert.Equal(t, "flag-%B%E", opts.Template)
	assert.Equal(t, pathkit.RenameCollisions, opts.Policy)
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := loadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Collapse.Template)
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, pathkit.ConfigFileName), []byte("collapse: [\n"), 0o644))

	_, err := loadProjectConfig(dir)
	require.Error(t, err)
	assert.Equal(t, pathkit.ExitConfigError, pathkit.ExitCodeForError(err))
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/internal/scaffold"
)

var exampleCmd = &cobra.Command{
	Use:   "example <folder>",
	Short: "Create an example folder tree",
	Long: `Example creates a small tree of empty files to try collapse and rename on.
The folder is created if needed and must be empty.

Layouts:
  basic       a.txt, test/b.txt, test/temp/c.txt
  collisions  like basic plus test/a.txt, which collides with a.txt
  nested      test/c.png, test/temp/b.txt, test/temp/t/a.txt

Examples:
  pathkit example ./example
  pathkit example ./example --layout collisions`,
	Args:              RequireFolderPath,
	ValidArgsFunction: completeDirectories,
	RunE:              runExample,
}

var exampleLayout string

func init() {
	rootCmd.AddCommand(exampleCmd)

	exampleCmd.Flags().StringVarP(&exampleLayout, "layout", "l", scaffold.DefaultLayout,
		"Layout to create (basic, collisions, nested)")
	_ = exampleCmd.RegisterFlagCompletionFunc("layout", completeLayoutNames)
}

func runExample(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path '%s': %w", args[0], err)
	}
	target := entity.NewFolder(filesystem.NewOSFileSystem(), abs)

	organizer := newOrganizer(false, verbose, logging.NewConsoleLogger(verbose))
	if err := organizer.Scaffold(target, exampleLayout); err != nil {
		return fmt.Errorf("failed to create example: %w", err)
	}

	out, err := organizer.Beautify(target, nil)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

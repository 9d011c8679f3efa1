package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathkit",
	Short: "Flatten and rename folder trees",
	Long: `pathkit reorganizes folder trees.

  collapse  moves every file of a tree up into one folder, renaming files
            through a template when names collide, and removes the folders
            left empty
  rename    renames files in place through a template
  tree      prints a folder tree
  example   creates an example tree to experiment with

Rename templates:
  %B         file name without extension
  %E         extension, including the leading dot
  %C[sep]    collapsed folder names joined with sep (bare %C joins with "_")
  %T<k><fmt> timestamp k (C created, M modified, A accessed, L least of them)
             formatted with strftime codes, e.g. %TCY-%m-%d
  %%         a literal percent sign

Every change is planned before anything moves; colliding names abort the
run without touching a file.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  12 - User declined the planned changes
  20 - Rename template could not be parsed or evaluated
  21 - Destination names collide, nothing was changed
  22 - Operation stopped after some files were moved
  23 - Filesystem refused an operation`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

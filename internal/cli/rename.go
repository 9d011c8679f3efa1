package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/internal/tui"
)

var renameCmd = &cobra.Command{
	Use:   "rename <folder>",
	Short: "Rename files in place through a template",
	Long: `Rename gives every file of the folder a new name computed from a
template. With --recursive files in subfolders are renamed too, and %C expands
to the folders between the given folder and the file.

The names are computed for all files before anything is renamed. If two files
would get the same name, or a name already taken by something that is not
renamed, the command fails and nothing is changed. Files may swap names.

Examples:
  # Prefix every file with its creation date
  pathkit rename ./photos --template "%TCY-%m-%d %B%E"

  # Append the creation date in the form "a 10-Jun-2019.txt"
  pathkit rename ./docs --template "%B %TCd-%TCb-%TCY%E"

  # Prefix files in subfolders with their folder path
  pathkit rename ./archive --recursive --template "%C[-]-%B%E"`,
	Args:              RequireFolderPath,
	ValidArgsFunction: completeDirectories,
	RunE:              runRename,
}

type renameFlagValues struct {
	template, separator string
	recursive           bool
	dryRun, force       bool
}

var renameFlags renameFlagValues

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().StringVarP(&renameFlags.template, "template", "t", "",
		"Rename template (see 'pathkit --help')\n"+
			"Precedence: --template > $PATHKIT_TEMPLATE > pathkit.yaml")
	renameCmd.Flags().StringVar(&renameFlags.separator, "separator", "",
		"Separator for a bare %C directive (default \"_\")")
	renameCmd.Flags().BoolVarP(&renameFlags.recursive, "recursive", "r", false,
		"Rename files in subfolders too")
	renameCmd.Flags().BoolVar(&renameFlags.dryRun, "dry-run", false,
		"Print the planned changes without applying them")
	renameCmd.Flags().BoolVar(&renameFlags.force, "force", false,
		"Skip the interactive approval prompt")
}

func runRename(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	root, err := openFolder(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(root.Path())
	if err != nil {
		return err
	}
	opts, err := resolveRenameOptions(cmd, renameFlags, cfg)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	organizer := newOrganizer(renameFlags.force, verbose, logger)
	styled := tui.IsInteractive()

	if renameFlags.dryRun {
		plan, err := organizer.PlanRename(root, opts)
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), plan, styled)
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := organizer.RenameFiles(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	printResult(cmd.OutOrStdout(), "renamed", result, styled)
	return nil
}

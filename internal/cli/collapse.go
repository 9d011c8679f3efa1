package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/internal/tui"
)

var collapseCmd = &cobra.Command{
	Use:   "collapse <folder>",
	Short: "Move every file of a folder tree up into one folder",
	Long: `Collapse moves every file below the folder up into it and removes the
folders left empty.

The whole tree is planned before anything moves. When two files would end up
with the same name the command fails and nothing is changed, unless a rename
template is given: relocated files are then renamed through it (all of them,
or only the colliding ones with --rename-collisions-only).

Files directly in the folder never move. With --start-depth N the first N
folder levels are kept and everything deeper is collapsed into them.

Configuration precedence: flags > $PATHKIT_TEMPLATE/$PATHKIT_SEPARATOR >
pathkit.yaml in the folder > defaults.

Examples:
  # Flatten, failing on any name collision
  pathkit collapse ./example

  # Append the collapsed folder names to every moved file
  pathkit collapse ./example --template "%B %C[-]%E"

  # Keep the year folders of an archive, flatten everything below them
  pathkit collapse ./photos --start-depth 1 --template "%TCY-%m-%d %B%E"

  # Show what would happen
  pathkit collapse ./example --dry-run`,
	Args:              RequireFolderPath,
	ValidArgsFunction: completeDirectories,
	RunE:              runCollapse,
}

type collapseFlagValues struct {
	template, separator string
	startDepth          int
	collisionsOnly      bool
	dryRun, force       bool
}

var collapseFlags collapseFlagValues

func init() {
	rootCmd.AddCommand(collapseCmd)

	collapseCmd.Flags().StringVarP(&collapseFlags.template, "template", "t", "",
		"Rename template for relocated files (see 'pathkit --help')\n"+
			"Precedence: --template > $PATHKIT_TEMPLATE > pathkit.yaml")
	collapseCmd.Flags().StringVar(&collapseFlags.separator, "separator", "",
		"Separator for a bare %C directive (default \"_\")")
	collapseCmd.Flags().IntVar(&collapseFlags.startDepth, "start-depth", 0,
		"Number of folder levels to keep below the folder")
	collapseCmd.Flags().BoolVar(&collapseFlags.collisionsOnly, "rename-collisions-only", false,
		"Apply the template only to files whose name collides")
	collapseCmd.Flags().BoolVar(&collapseFlags.dryRun, "dry-run", false,
		"Print the planned changes without applying them")
	collapseCmd.Flags().BoolVar(&collapseFlags.force, "force", false,
		"Skip the interactive approval prompt")
}

func runCollapse(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	root, err := openFolder(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(root.Path())
	if err != nil {
		return err
	}
	opts, err := resolveCollapseOptions(cmd, collapseFlags, cfg)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	organizer := newOrganizer(collapseFlags.force, verbose, logger)
	styled := tui.IsInteractive()

	if collapseFlags.dryRun {
		plan, err := organizer.PlanCollapse(root, opts)
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), plan, styled)
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := organizer.Collapse(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("collapse failed: %w", err)
	}
	printResult(cmd.OutOrStdout(), "collapsed", result, styled)
	return nil
}

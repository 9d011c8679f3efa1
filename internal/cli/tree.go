package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/files/tree"
	"github.com/vvka-141/pathkit/internal/logging"
	"github.com/vvka-141/pathkit/internal/tui"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

var treeCmd = &cobra.Command{
	Use:   "tree <folder>",
	Short: "Print a folder tree",
	Long: `Tree prints the folder and everything below it.

Examples:
  pathkit tree ./example
  pathkit tree ./photos --depth 2`,
	Args:              RequireFolderPath,
	ValidArgsFunction: completeDirectories,
	RunE:              runTree,
}

var treeDepth int

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntVarP(&treeDepth, "depth", "L", 0,
		"Number of levels to print (0 prints everything)")
}

func runTree(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	root, err := openFolder(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(root.Path())
	if err != nil {
		return err
	}

	printer := &tree.Printer{MaxDepth: cfg.Tree.Depth}
	if cmd.Flags().Changed("depth") {
		printer.MaxDepth = treeDepth
	}
	if printer.MaxDepth < 0 {
		return fmt.Errorf("%w: --depth must not be negative", pathkit.ErrInvalidConfig)
	}
	if tui.IsInteractive() {
		printer.FolderStyle = &tui.FolderStyle
	}

	organizer := newOrganizer(false, verbose, logging.NewConsoleLogger(verbose))
	out, err := organizer.Beautify(root, printer)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

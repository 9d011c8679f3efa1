package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/config"
	"github.com/vvka-141/pathkit/internal/files/collapse"
	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/internal/services"
	"github.com/vvka-141/pathkit/internal/ui"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Environment overrides, between flags and pathkit.yaml in precedence.
const (
	envTemplate  = "PATHKIT_TEMPLATE"
	envSeparator = "PATHKIT_SEPARATOR"
)

// loadProjectConfig loads godotenv and the project configuration of dir.
// Returns an empty config if pathkit.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", pathkit.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveString applies flag > environment > pathkit.yaml precedence.
func resolveString(cmd *cobra.Command, flagName, flagValue, envKey, fileValue string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fileValue
}

// resolveCollapseOptions merges collapse flags, environment and pathkit.yaml.
func resolveCollapseOptions(cmd *cobra.Command, flags collapseFlagValues, cfg *config.ProjectConfig) (collapse.Options, error) {
	opts := collapse.Options{
		Template:   resolveString(cmd, "template", flags.template, envTemplate, cfg.Collapse.Template),
		Separator:  resolveString(cmd, "separator", flags.separator, envSeparator, cfg.Collapse.Separator),
		StartDepth: cfg.Collapse.StartDepth,
	}
	if cmd.Flags().Changed("start-depth") {
		opts.StartDepth = flags.startDepth
	}
	if opts.StartDepth < 0 {
		return collapse.Options{}, fmt.Errorf("%w: --start-depth must not be negative", pathkit.ErrInvalidConfig)
	}

	if cmd.Flags().Changed("rename-collisions-only") {
		opts.Policy = pathkit.RenameMoved
		if flags.collisionsOnly {
			opts.Policy = pathkit.RenameCollisions
		}
		return opts, nil
	}
	policy, err := pathkit.ParseRenamePolicy(cfg.Collapse.Rename)
	if err != nil {
		return collapse.Options{}, err
	}
	opts.Policy = policy
	return opts, nil
}

// resolveRenameOptions merges rename flags, environment and pathkit.yaml.
func resolveRenameOptions(cmd *cobra.Command, flags renameFlagValues, cfg *config.ProjectConfig) (services.RenameOptions, error) {
	opts := services.RenameOptions{
		Template:  resolveString(cmd, "template", flags.template, envTemplate, cfg.Rename.Template),
		Separator: resolveString(cmd, "separator", flags.separator, envSeparator, cfg.Collapse.Separator),
		Recursive: cfg.Rename.Recursive,
	}
	if cmd.Flags().Changed("recursive") {
		opts.Recursive = flags.recursive
	}
	if opts.Template == "" {
		return services.RenameOptions{}, fmt.Errorf("%w: no rename template; use --template, $%s or rename.template in %s",
			pathkit.ErrInvalidConfig, envTemplate, pathkit.ConfigFileName)
	}
	return opts, nil
}

// openFolder resolves path to an existing folder on the OS filesystem.
func openFolder(path string) (*entity.Folder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}

	folder := entity.NewFolder(filesystem.NewOSFileSystem(), abs)
	if !folder.Exists() {
		if entity.NewFile(folder.FileSystem(), abs).Exists() {
			return nil, &pathkit.PathError{Op: "open", Path: abs, Err: pathkit.ErrPathConflict}
		}
		return nil, &pathkit.PathError{Op: "open", Path: abs, Err: pathkit.ErrNotFound}
	}
	return folder, nil
}

// newOrganizer wires the organizer for a command run.
// Selects the approver implementation based on the --force flag.
func newOrganizer(force, verbose bool, logger pathkit.Logger) *services.Organizer {
	var approver pathkit.Approver
	if force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}
	return services.NewOrganizer(approver, logger)
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

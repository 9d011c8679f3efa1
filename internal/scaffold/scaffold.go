// Package scaffold creates example folder trees to try collapse and rename on.
package scaffold

import (
	"embed"
	"fmt"
	"path"
	"path/filepath"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/internal/files/filesystem"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

//go:embed layouts
var layoutsFS embed.FS

// DefaultLayout is used when no layout is named.
const DefaultLayout = "basic"

// Scaffolder creates example trees from the embedded layouts. Every file of
// a layout is created empty.
type Scaffolder struct {
	logger pathkit.Logger
}

// NewScaffolder creates a new Scaffolder instance. Panics if logger is nil.
func NewScaffolder(logger pathkit.Logger) *Scaffolder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{logger: logger}
}

// Create lays out the named layout under target. The target folder is created
// when missing and must otherwise be empty.
func (s *Scaffolder) Create(target *entity.Folder, layout string) error {
	if layout == "" {
		layout = DefaultLayout
	}
	source, err := filesystem.OpenFS(layoutsFS, path.Join("layouts", layout))
	if err != nil {
		return fmt.Errorf("%w: layout '%s' not found", pathkit.ErrInvalidConfig, layout)
	}

	if target.Exists() {
		empty, err := target.IsEmpty()
		if err != nil {
			return err
		}
		if !empty {
			return fmt.Errorf("target folder '%s' is not empty: %w", target.Path(), pathkit.ErrPathConflict)
		}
	} else if err := target.Create(); err != nil {
		return err
	}

	s.logger.Verbose("Creating layout '%s' at %s", layout, target.Path())

	fsys := target.FileSystem()
	return source.Walk(func(e filesystem.Entry, err error) error {
		if err != nil {
			return err
		}
		if e.RelativePath() == "." {
			return nil
		}

		rel := filepath.FromSlash(e.RelativePath())
		if e.Info().IsDir() {
			s.logger.Verbose("Creating folder: %s", rel)
			return entity.NewFolder(fsys, filepath.Join(target.Path(), rel)).Create()
		}
		s.logger.Verbose("Creating file: %s", rel)
		return entity.NewFile(fsys, filepath.Join(target.Path(), rel)).Create()
	})
}

// ListLayouts returns the available layout names.
func ListLayouts() ([]string, error) {
	entries, err := layoutsFS.ReadDir("layouts")
	if err != nil {
		return nil, err
	}

	var layouts []string
	for _, entry := range entries {
		if entry.IsDir() {
			layouts = append(layouts, entry.Name())
		}
	}
	return layouts, nil
}

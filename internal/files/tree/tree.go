// Package tree renders folder hierarchies as text trees.
package tree

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pathkit/internal/files/entity"
)

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	blank      = "    "
)

// Printer renders a folder and its descendants, one entry per line:
//
//	example
//	├── a.txt
//	└── test
//	    └── b.txt
type Printer struct {
	// MaxDepth limits how many levels below the root are listed. Zero lists
	// everything.
	MaxDepth int
	// FolderStyle, when set, is applied to folder names.
	FolderStyle *lipgloss.Style
}

// Render returns the tree of root. Children appear in listing order.
func (p *Printer) Render(root *entity.Folder) (string, error) {
	var b strings.Builder
	if err := p.Write(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write renders the tree of root to w.
func (p *Printer) Write(w io.Writer, root *entity.Folder) error {
	if _, err := io.WriteString(w, p.folderName(root)+"\n"); err != nil {
		return err
	}
	return p.writeChildren(w, root, "", 1)
}

func (p *Printer) writeChildren(w io.Writer, dir *entity.Folder, prefix string, depth int) error {
	if p.MaxDepth > 0 && depth > p.MaxDepth {
		return nil
	}

	children, err := dir.Children()
	if err != nil {
		return err
	}

	for i, child := range children {
		connector, indent := branch, pipe
		if i == len(children)-1 {
			connector, indent = lastBranch, blank
		}

		name := child.Base()
		sub, isFolder := child.(*entity.Folder)
		if isFolder {
			name = p.folderName(sub)
		}
		if _, err := io.WriteString(w, prefix+connector+name+"\n"); err != nil {
			return err
		}

		if isFolder {
			if err := p.writeChildren(w, sub, prefix+indent, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) folderName(f *entity.Folder) string {
	if p.FolderStyle == nil {
		return f.Base()
	}
	return p.FolderStyle.Render(f.Base())
}

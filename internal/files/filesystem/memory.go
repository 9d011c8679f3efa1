package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryNode is a single file or directory of the in-memory tree
type memoryNode struct {
	absPath string
	content []byte
	isDir   bool
	times   Times
}

func (n *memoryNode) info() FileInfo {
	mode := fs.FileMode(0644)
	if n.isDir {
		mode = 0755 | fs.ModeDir
	}
	return &memoryFileInfo{
		name:    path.Base(n.absPath),
		size:    int64(len(n.content)),
		mode:    mode,
		modTime: n.times.Modified,
		isDir:   n.isDir,
	}
}

// memoryEntry implements Entry for in-memory walks
type memoryEntry struct {
	absPath string
	relPath string
	info    FileInfo
}

func (e *memoryEntry) Path() string         { return e.absPath }
func (e *memoryEntry) RelativePath() string { return e.relPath }
func (e *memoryEntry) Info() FileInfo       { return e.info }

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(Entry, error) error) error {
	// Get all files and directories under this path
	nodes := d.fs.nodesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].absPath < nodes[j].absPath
	})

	for _, node := range nodes {
		relPath := "."
		if node.absPath != d.absPath {
			relPath = strings.TrimPrefix(node.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
		}
		entry := &memoryEntry{absPath: node.absPath, relPath: relPath, info: node.info()}

		// Recover from panics in callback to prevent crashing the entire walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", node.absPath, r)
				}
			}()

			callbackErr = fn(entry, nil)
		}()

		// If callback returned an error (or panicked), stop walking
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths are resolved against the root.
type MemoryFileSystem struct {
	nodes    map[string]*memoryNode // map of absolute path -> node
	root     string                 // root directory path
	now      func() time.Time
	failures map[string]error // "op path" -> injected error
}

// NewMemoryFileSystem creates a new in-memory filesystem whose root directory
// (and its ancestors) exist.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	// Normalize root to forward slashes (virtual filesystem convention)
	root = path.Clean(filepath.ToSlash(root))
	if !path.IsAbs(root) {
		root = "/" + root
	}

	mfs := &MemoryFileSystem{
		nodes:    make(map[string]*memoryNode),
		root:     root,
		now:      time.Now,
		failures: make(map[string]error),
	}
	mfs.mkdirs(root)

	return mfs
}

// Root returns the root directory of the filesystem
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// SetClock replaces the time source used for newly created entries
func (mfs *MemoryFileSystem) SetClock(now func() time.Time) {
	mfs.now = now
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, mfs.now())
}

// AddFileWithTime adds a file whose three timestamps are all set to t
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, t time.Time) {
	mfs.AddFileWithTimes(filePath, content, Times{Created: t, Modified: t, Accessed: t})
}

// AddFileWithTimes adds a file with explicit timestamps. Zero timestamps are
// reported as unavailable.
func (mfs *MemoryFileSystem) AddFileWithTimes(filePath string, content string, times Times) {
	absPath := mfs.resolve(filePath)
	mfs.mkdirs(path.Dir(absPath))
	mfs.nodes[absPath] = &memoryNode{
		absPath: absPath,
		content: []byte(content),
		times:   times,
	}
}

// AddDir adds an empty directory (and its parents)
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mkdirs(mfs.resolve(dirPath))
}

// SetTimes replaces the timestamps of an existing path
func (mfs *MemoryFileSystem) SetTimes(p string, times Times) error {
	node, ok := mfs.nodes[mfs.resolve(p)]
	if !ok {
		return &fs.PathError{Op: "chtimes", Path: p, Err: fs.ErrNotExist}
	}
	node.times = times
	return nil
}

// FailOn makes the next and every following call of op on p fail with err.
// Supported ops: create, mkdir, readdir, remove, rename, stat, times.
func (mfs *MemoryFileSystem) FailOn(op, p string, err error) {
	mfs.failures[op+" "+mfs.resolve(p)] = err
}

// List returns every path below the root, relative to it, sorted.
// Directories carry a trailing slash.
func (mfs *MemoryFileSystem) List() []string {
	var out []string
	for p, node := range mfs.nodes {
		if p == mfs.root || !strings.HasPrefix(p, strings.TrimSuffix(mfs.root, "/")+"/") {
			continue
		}
		rel := strings.TrimPrefix(p, strings.TrimSuffix(mfs.root, "/")+"/")
		if node.isDir {
			rel += "/"
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}

// resolve converts a path to its absolute, cleaned, slash-separated form
func (mfs *MemoryFileSystem) resolve(p string) string {
	// Normalize path to forward slashes (virtual filesystem convention)
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) injected(op, absPath string) error {
	if err, ok := mfs.failures[op+" "+absPath]; ok {
		return &fs.PathError{Op: op, Path: absPath, Err: err}
	}
	return nil
}

// mkdirs creates directory entries for p and all of its parents
func (mfs *MemoryFileSystem) mkdirs(p string) {
	for {
		if _, exists := mfs.nodes[p]; exists {
			return
		}
		now := mfs.now()
		mfs.nodes[p] = &memoryNode{
			absPath: p,
			isDir:   true,
			times:   Times{Created: now, Modified: now, Accessed: now},
		}
		parent := path.Dir(p)
		if parent == p {
			return
		}
		p = parent
	}
}

// nodesUnder returns the node at basePath and everything below it
func (mfs *MemoryFileSystem) nodesUnder(basePath string) []*memoryNode {
	prefix := strings.TrimSuffix(basePath, "/") + "/"
	var nodes []*memoryNode
	for p, node := range mfs.nodes {
		if p == basePath || strings.HasPrefix(p, prefix) {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (mfs *MemoryFileSystem) hasChildren(dirPath string) bool {
	prefix := strings.TrimSuffix(dirPath, "/") + "/"
	for p := range mfs.nodes {
		if p != dirPath && strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %w", &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist})
	}
	if !node.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{
		absPath: absPath,
		fs:      mfs,
	}, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)
	if err := mfs.injected("stat", absPath); err != nil {
		return nil, err
	}

	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}

	return node.info(), nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.resolve(dirPath)
	if err := mfs.injected("readdir", absPath); err != nil {
		return nil, err
	}

	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: syscall.ENOTDIR}
	}

	var children []*memoryNode
	for p, child := range mfs.nodes {
		if p != absPath && path.Dir(p) == absPath {
			children = append(children, child)
		}
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].absPath < children[j].absPath
	})

	result := make([]FileInfo, 0, len(children))
	for _, child := range children {
		result = append(result, child.info())
	}
	return result, nil
}

// Times implements FileSystemProvider.Times
func (mfs *MemoryFileSystem) Times(p string) (Times, error) {
	absPath := mfs.resolve(p)
	if err := mfs.injected("times", absPath); err != nil {
		return Times{}, err
	}

	node, exists := mfs.nodes[absPath]
	if !exists {
		return Times{}, &fs.PathError{Op: "times", Path: p, Err: fs.ErrNotExist}
	}
	return node.times, nil
}

// CreateFile implements FileSystemProvider.CreateFile
func (mfs *MemoryFileSystem) CreateFile(filePath string) error {
	absPath := mfs.resolve(filePath)
	if err := mfs.injected("create", absPath); err != nil {
		return err
	}

	if _, exists := mfs.nodes[absPath]; exists {
		return &fs.PathError{Op: "create", Path: filePath, Err: fs.ErrExist}
	}
	if parent, ok := mfs.nodes[path.Dir(absPath)]; !ok || !parent.isDir {
		return &fs.PathError{Op: "create", Path: filePath, Err: fs.ErrNotExist}
	}

	now := mfs.now()
	mfs.nodes[absPath] = &memoryNode{
		absPath: absPath,
		times:   Times{Created: now, Modified: now, Accessed: now},
	}
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	absPath := mfs.resolve(dirPath)
	if err := mfs.injected("mkdir", absPath); err != nil {
		return err
	}

	// Every existing ancestor must be a directory
	for p := absPath; ; p = path.Dir(p) {
		if node, exists := mfs.nodes[p]; exists && !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: p, Err: syscall.ENOTDIR}
		}
		if path.Dir(p) == p {
			break
		}
	}

	mfs.mkdirs(absPath)
	return nil
}

// Rename implements FileSystemProvider.Rename. Unlike os.Rename on POSIX
// systems it never replaces an existing destination.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	from, to := mfs.resolve(oldPath), mfs.resolve(newPath)
	if err := mfs.injected("rename", from); err != nil {
		return err
	}

	if _, exists := mfs.nodes[from]; !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if from == to {
		return nil
	}
	if _, exists := mfs.nodes[to]; exists {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrExist}
	}
	if parent, ok := mfs.nodes[path.Dir(to)]; !ok || !parent.isDir {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	if strings.HasPrefix(to, from+"/") {
		return &fs.PathError{Op: "rename", Path: newPath, Err: syscall.EINVAL}
	}

	for _, node := range mfs.nodesUnder(from) {
		delete(mfs.nodes, node.absPath)
		node.absPath = to + strings.TrimPrefix(node.absPath, from)
		mfs.nodes[node.absPath] = node
	}
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(p string) error {
	absPath := mfs.resolve(p)
	if err := mfs.injected("remove", absPath); err != nil {
		return err
	}

	node, exists := mfs.nodes[absPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	if node.isDir && mfs.hasChildren(absPath) {
		return &fs.PathError{Op: "remove", Path: p, Err: syscall.ENOTEMPTY}
	}

	delete(mfs.nodes, absPath)
	return nil
}

// RemoveAll implements FileSystemProvider.RemoveAll
func (mfs *MemoryFileSystem) RemoveAll(p string) error {
	absPath := mfs.resolve(p)
	if err := mfs.injected("remove", absPath); err != nil {
		return err
	}

	for _, node := range mfs.nodesUnder(absPath) {
		delete(mfs.nodes, node.absPath)
	}
	return nil
}

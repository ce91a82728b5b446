package models

// ProjectContext is the immutable snapshot handed to the prompt pipeline:
// a rendered file tree plus the project's README when one exists.
type ProjectContext struct {
	FileTree string
	Readme   string
}

// TreeEntry is one node of the traversal tree. Directories hold their
// qualifying children; directories with no qualifying descendants are pruned
// before rendering.
type TreeEntry struct {
	Name        string
	Path        string // relative to the traversal root
	IsDirectory bool
	Size        int64
	Children    []*TreeEntry
}

// Options bound the traversal.
type Options struct {
	MaxDepth        int
	ExcludePatterns []string
	IncludeSizes    bool
	MaxFiles        int
}

const (
	DefaultMaxDepth = 10
	DefaultMaxFiles = 1000
)

// DefaultOptions returns the traversal bounds used when the caller supplies
// none.
func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		MaxFiles: DefaultMaxFiles,
	}
}

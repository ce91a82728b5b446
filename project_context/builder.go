package project_context

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"archmap/project_context/contracts"
	"archmap/project_context/models"
)

// defaultExcludePatterns covers VCS metadata, build output, dependency
// directories, lockfiles, and OS artifacts. Caller-supplied patterns are
// merged on top.
var defaultExcludePatterns = []string{
	".git",
	".svn",
	".hg",
	".idea",
	".vscode",
	".cache",
	"node_modules",
	"vendor",
	"bower_components",
	"dist",
	"build",
	"out",
	"target",
	"bin",
	"obj",
	"__pycache__",
	"coverage",
	".DS_Store",
	"Thumbs.db",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
	"Cargo.lock",
	"Gemfile.lock",
	"*.log",
	"*.tmp",
	"*.bak",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.pyc",
	"*.class",
	"*.o",
}

// ContextBuilder walks a project tree and renders the bounded textual
// summary the prompt pipeline consumes.
type ContextBuilder struct {
	logger *zap.Logger
}

// NewContextBuilder initializes a new ContextBuilder. A nil logger is
// replaced with a no-op logger.
func NewContextBuilder(logger *zap.Logger) contracts.IContextBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextBuilder{logger: logger}
}

// BuildContext traverses rootPath within the configured bounds and returns
// the rendered file tree plus the project README when one exists.
func (b *ContextBuilder) BuildContext(rootPath string, options models.Options) (*models.ProjectContext, error) {
	if options.MaxDepth <= 0 {
		options.MaxDepth = models.DefaultMaxDepth
	}
	if options.MaxFiles <= 0 {
		options.MaxFiles = models.DefaultMaxFiles
	}
	options.ExcludePatterns = append(append([]string{}, defaultExcludePatterns...), options.ExcludePatterns...)

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", rootPath)
	}

	t := &traversal{options: options, logger: b.logger}
	entries := t.walk(rootPath, "", 1)

	var sb strings.Builder
	sb.WriteString(filepath.Base(filepath.Clean(rootPath)))
	sb.WriteString("/\n")
	renderEntries(&sb, entries, "", options.IncludeSizes)

	if t.filesSeen > t.filesEmitted {
		sb.WriteString(fmt.Sprintf("... (truncated: showing %d of %d files)\n", t.filesEmitted, t.filesSeen))
	}

	readme, found := ReadReadme(rootPath)
	if !found {
		b.logger.Debug("no README found", zap.String("root", rootPath))
	}

	return &models.ProjectContext{
		FileTree: sb.String(),
		Readme:   readme,
	}, nil
}

// traversal carries the global file budget across the whole walk; the budget
// is shared, not per-directory.
type traversal struct {
	options      models.Options
	filesEmitted int
	filesSeen    int
	logger       *zap.Logger
}

// walk returns the qualifying entries of one directory, directories before
// files, both alphabetical. Unreadable directories are skipped with a
// warning. Directories whose subtree contains no qualifying file collapse
// silently.
func (t *traversal) walk(absPath, relPath string, depth int) []*models.TreeEntry {
	if depth > t.options.MaxDepth {
		return nil
	}

	dirEntries, err := os.ReadDir(absPath)
	if err != nil {
		t.logger.Warn("skipping unreadable directory",
			zap.String("path", absPath),
			zap.Error(err))
		return nil
	}

	var dirs, files []os.DirEntry
	for _, e := range dirEntries {
		if isExcluded(e.Name(), t.options.ExcludePatterns) {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	var result []*models.TreeEntry

	for _, d := range dirs {
		childRel := filepath.ToSlash(filepath.Join(relPath, d.Name()))
		children := t.walk(filepath.Join(absPath, d.Name()), childRel, depth+1)
		if len(children) == 0 {
			continue
		}
		result = append(result, &models.TreeEntry{
			Name:        d.Name(),
			Path:        childRel,
			IsDirectory: true,
			Children:    children,
		})
	}

	for _, f := range files {
		t.filesSeen++
		if t.filesEmitted >= t.options.MaxFiles {
			continue
		}
		entry := &models.TreeEntry{
			Name: f.Name(),
			Path: filepath.ToSlash(filepath.Join(relPath, f.Name())),
		}
		if t.options.IncludeSizes {
			if info, err := f.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		t.filesEmitted++
		result = append(result, entry)
	}

	return result
}

// isExcluded matches a name against the supported glob forms: exact,
// `prefix*`, and `*suffix`. Any other pattern form is treated as an exact
// match.
func isExcluded(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		p := strings.ToLower(pattern)
		switch {
		case len(p) > 1 && strings.HasPrefix(p, "*"):
			if strings.HasSuffix(lower, p[1:]) {
				return true
			}
		case len(p) > 1 && strings.HasSuffix(p, "*"):
			if strings.HasPrefix(lower, p[:len(p)-1]) {
				return true
			}
		default:
			if lower == p {
				return true
			}
		}
	}
	return false
}

// renderEntries draws the tree with box characters, directories suffixed
// with a slash, optional human-readable sizes.
func renderEntries(sb *strings.Builder, entries []*models.TreeEntry, prefix string, includeSizes bool) {
	for i, entry := range entries {
		isLast := i == len(entries)-1

		sb.WriteString(prefix)
		if isLast {
			sb.WriteString("└── ")
		} else {
			sb.WriteString("├── ")
		}
		sb.WriteString(entry.Name)
		if entry.IsDirectory {
			sb.WriteString("/")
		} else if includeSizes {
			sb.WriteString(" (")
			sb.WriteString(formatSize(entry.Size))
			sb.WriteString(")")
		}
		sb.WriteString("\n")

		if len(entry.Children) > 0 {
			childPrefix := prefix
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
			renderEntries(sb, entry.Children, childPrefix, includeSizes)
		}
	}
}

// formatSize renders a byte count with one decimal in the largest fitting
// unit.
func formatSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.1fGB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.1fMB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.1fKB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%dB", size)
	}
}

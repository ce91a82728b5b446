package project_context

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archmap/project_context/models"
)

// writeFile creates a file with parent directories as needed.
func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	fullPath := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

func TestBuildContext_ExcludesNoiseDirectories(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "src/index.ts", "console.log('hi')")
	writeFile(t, tempDir, "node_modules/react/index.js", "module.exports = {}")
	writeFile(t, tempDir, ".git/HEAD", "ref: refs/heads/main")
	writeFile(t, tempDir, "README.md", "# My Project")

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, ctx.FileTree, "src/")
	assert.Contains(t, ctx.FileTree, "index.ts")
	assert.Contains(t, ctx.FileTree, "README.md")
	assert.NotContains(t, ctx.FileTree, "node_modules")
	assert.NotContains(t, ctx.FileTree, ".git")
	assert.Equal(t, "# My Project", ctx.Readme)
}

func TestBuildContext_DirectoriesBeforeFilesAlphabetical(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "zebra.txt", "z")
	writeFile(t, tempDir, "alpha.txt", "a")
	writeFile(t, tempDir, "lib/code.go", "package lib")
	writeFile(t, tempDir, "apps/main.go", "package main")

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.Options{MaxDepth: 10, MaxFiles: 100})
	require.NoError(t, err)

	appsIdx := strings.Index(ctx.FileTree, "apps/")
	libIdx := strings.Index(ctx.FileTree, "lib/")
	alphaIdx := strings.Index(ctx.FileTree, "alpha.txt")
	zebraIdx := strings.Index(ctx.FileTree, "zebra.txt")

	require.True(t, appsIdx >= 0 && libIdx >= 0 && alphaIdx >= 0 && zebraIdx >= 0)
	assert.Less(t, appsIdx, libIdx)
	assert.Less(t, libIdx, alphaIdx)
	assert.Less(t, alphaIdx, zebraIdx)
}

func TestBuildContext_MaxDepthCutsSubtrees(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "top.txt", "1")
	writeFile(t, tempDir, "a/second.txt", "2")
	writeFile(t, tempDir, "a/b/third.txt", "3")

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.Options{MaxDepth: 2, MaxFiles: 100})
	require.NoError(t, err)

	assert.Contains(t, ctx.FileTree, "top.txt")
	assert.Contains(t, ctx.FileTree, "second.txt")
	assert.NotContains(t, ctx.FileTree, "third.txt")
}

func TestBuildContext_MaxFilesBudgetIsGlobal(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a/one.txt", "1")
	writeFile(t, tempDir, "a/two.txt", "2")
	writeFile(t, tempDir, "b/three.txt", "3")
	writeFile(t, tempDir, "b/four.txt", "4")

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.Options{MaxDepth: 10, MaxFiles: 2})
	require.NoError(t, err)

	assert.Contains(t, ctx.FileTree, "truncated: showing 2 of 4 files")

	emitted := 0
	for _, name := range []string{"one.txt", "two.txt", "three.txt", "four.txt"} {
		if strings.Contains(ctx.FileTree, name) {
			emitted++
		}
	}
	assert.Equal(t, 2, emitted)
}

func TestBuildContext_EmptyDirectoriesCollapse(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "src/main.go", "package main")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "empty/nested"), 0755))

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.DefaultOptions())
	require.NoError(t, err)

	assert.NotContains(t, ctx.FileTree, "empty")
	assert.Contains(t, ctx.FileTree, "src/")
}

func TestBuildContext_IncludeSizes(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "small.txt", strings.Repeat("x", 100))
	writeFile(t, tempDir, "big.txt", strings.Repeat("x", 2048))

	builder := NewContextBuilder(nil)
	ctx, err := builder.BuildContext(tempDir, models.Options{MaxDepth: 10, MaxFiles: 100, IncludeSizes: true})
	require.NoError(t, err)

	assert.Contains(t, ctx.FileTree, "small.txt (100B)")
	assert.Contains(t, ctx.FileTree, "big.txt (2.0KB)")
}

func TestBuildContext_Deterministic(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "c.txt", "c")
	writeFile(t, tempDir, "a.txt", "a")
	writeFile(t, tempDir, "b/x.txt", "x")

	builder := NewContextBuilder(nil)
	first, err := builder.BuildContext(tempDir, models.DefaultOptions())
	require.NoError(t, err)
	second, err := builder.BuildContext(tempDir, models.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.FileTree, second.FileTree)
}

func TestBuildContext_CustomExcludePatterns(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "keep.go", "package main")
	writeFile(t, tempDir, "skip.min.js", "var a=1")
	writeFile(t, tempDir, "testdata/fixture.json", "{}")

	builder := NewContextBuilder(nil)
	options := models.DefaultOptions()
	options.ExcludePatterns = []string{"*.min.js", "testdata"}
	ctx, err := builder.BuildContext(tempDir, options)
	require.NoError(t, err)

	assert.Contains(t, ctx.FileTree, "keep.go")
	assert.NotContains(t, ctx.FileTree, "skip.min.js")
	assert.NotContains(t, ctx.FileTree, "testdata")
}

func TestBuildContext_RootErrors(t *testing.T) {
	builder := NewContextBuilder(nil)

	_, err := builder.BuildContext(filepath.Join(t.TempDir(), "missing"), models.DefaultOptions())
	assert.Error(t, err)

	tempDir := t.TempDir()
	writeFile(t, tempDir, "file.txt", "x")
	_, err = builder.BuildContext(filepath.Join(tempDir, "file.txt"), models.DefaultOptions())
	assert.Error(t, err)
}

func TestIsExcluded_GlobForms(t *testing.T) {
	patterns := []string{"node_modules", "*.log", "tmp*"}

	assert.True(t, isExcluded("node_modules", patterns))
	assert.True(t, isExcluded("NODE_MODULES", patterns))
	assert.True(t, isExcluded("debug.log", patterns))
	assert.True(t, isExcluded("tmpfile", patterns))
	assert.False(t, isExcluded("modules", patterns))
	assert.False(t, isExcluded("log.txt", patterns))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0B", formatSize(0))
	assert.Equal(t, "512B", formatSize(512))
	assert.Equal(t, "1.5KB", formatSize(1536))
	assert.Equal(t, "2.0MB", formatSize(2*1024*1024))
	assert.Equal(t, "1.0GB", formatSize(1024*1024*1024))
}

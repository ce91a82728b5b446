package project_context

import (
	"os"
	"path/filepath"
	"strings"
)

// readmeCandidates is the fixed preference order for README discovery.
// Matching is case-insensitive; the first hit wins.
var readmeCandidates = []string{
	"README.md",
	"README.markdown",
	"README",
	"README.txt",
	"README.rst",
	"README.adoc",
}

// ReadReadme finds and reads the project README. It returns the raw contents
// and true on success; a missing README yields "" and false, never an error.
func ReadReadme(rootPath string) (string, bool) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return "", false
	}

	byLowerName := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, exists := byLowerName[strings.ToLower(name)]; !exists {
			byLowerName[strings.ToLower(name)] = name
		}
	}

	for _, candidate := range readmeCandidates {
		actual, ok := byLowerName[strings.ToLower(candidate)]
		if !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(rootPath, actual))
		if err != nil {
			continue
		}
		return string(content), true
	}

	return "", false
}

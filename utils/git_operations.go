package utils

import (
	"fmt"
	"os/exec"
	"strings"
)

// GitOperations reads repository metadata used to turn diagram click paths
// into browsable GitHub links.
type GitOperations struct {
	workingDir string
}

// NewGitOperations creates a new GitOperations instance.
func NewGitOperations(workingDir string) *GitOperations {
	return &GitOperations{workingDir: workingDir}
}

// CheckGitRepo checks if the working directory is inside a git repository.
func (g *GitOperations) CheckGitRepo() error {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = g.workingDir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not a git repository")
	}
	return nil
}

// GetRemoteURL returns the origin remote normalized to an https browse URL.
// SSH remotes (git@github.com:org/repo.git) are rewritten; a trailing .git
// is dropped.
func (g *GitOperations) GetRemoteURL() (string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get origin remote: %w", err)
	}

	url := strings.TrimSpace(string(output))
	if after, ok := strings.CutPrefix(url, "git@"); ok {
		url = "https://" + strings.Replace(after, ":", "/", 1)
	}
	url = strings.TrimSuffix(url, ".git")
	return url, nil
}

// GetCurrentBranch returns the checked-out branch name.
func (g *GitOperations) GetCurrentBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// DetectRepoLink resolves the repo URL and branch for link rewriting. A
// missing repository or remote is not an error; links are simply skipped.
func (g *GitOperations) DetectRepoLink() (repoURL string, branch string, ok bool) {
	if err := g.CheckGitRepo(); err != nil {
		return "", "", false
	}
	repoURL, err := g.GetRemoteURL()
	if err != nil || repoURL == "" {
		return "", "", false
	}
	branch, err = g.GetCurrentBranch()
	if err != nil || branch == "" || branch == "HEAD" {
		branch = "main"
	}
	return repoURL, branch, true
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRepoLink_NotARepository(t *testing.T) {
	git := NewGitOperations(t.TempDir())

	repoURL, branch, ok := git.DetectRepoLink()
	assert.False(t, ok)
	assert.Empty(t, repoURL)
	assert.Empty(t, branch)
}

func TestCheckGitRepo_NotARepository(t *testing.T) {
	git := NewGitOperations(t.TempDir())
	assert.Error(t, git.CheckGitRepo())
}

package utils

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func TestInputPromptWithContext_ReadsLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  add a cache node  \n"))

	input, err := InputPromptWithContext(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, "add a cache node", input)
}

func TestInputPromptWithContext_EOFIsNotAnError(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))

	input, err := InputPromptWithContext(context.Background(), reader)
	assert.NoError(t, err)
	assert.Empty(t, input)
}

func TestInputPromptWithContext_WrapsReadError(t *testing.T) {
	readErr := errors.New("tty gone")
	reader := bufio.NewReader(&failingReader{err: readErr})

	_, err := InputPromptWithContext(context.Background(), reader)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestInputPromptWithContext_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	_, err := InputPromptWithContext(ctx, bufio.NewReader(pr))
	assert.ErrorIs(t, err, context.Canceled)
}

package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"archmap/constants/lipgloss"
)

// InputPromptWithContext reads one line of input with cancellation support.
// EOF yields an empty input, not an error; styling of read failures belongs
// to the print site.
func InputPromptWithContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		fmt.Print(lipgloss.BlueSky.Render("> "))

		userInput, err := reader.ReadString('\n')

		if err != nil {
			if err == io.EOF {
				errChan <- nil
			} else {
				errChan <- fmt.Errorf("error reading input: %w", err)
			}
			return
		}

		inputChan <- strings.TrimSpace(userInput)
	}()

	select {
	case <-ctx.Done():
		fmt.Println()
		return "", ctx.Err()
	case err := <-errChan:
		return "", err
	case input := <-inputChan:
		return input, nil
	}
}

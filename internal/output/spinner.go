package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RunWithSpinner executes action while a spinner titled title is shown.
// Without a terminal the action runs directly. Returns the action's error.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	done := make(chan struct{})
	var actionErr error
	go func() {
		defer close(done)
		actionErr = action(ctx)
	}()

	err := spinner.New().
		Title(title).
		Action(func() { <-done }).
		Run()
	<-done
	if err != nil && actionErr == nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return actionErr
}

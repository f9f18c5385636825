package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWithSpinner_ReturnsActionResult(t *testing.T) {
	calls := 0
	err := RunWithSpinner(context.Background(), "Loading", func(context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = RunWithSpinner(context.Background(), "Loading", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

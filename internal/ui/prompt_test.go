package ui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPasswordRequiresTerminal(t *testing.T) {
	// Point stdin at a pipe so the prompt refuses instead of blocking.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	_, err = PromptPassword("Password: ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestPasswordFuncPropagatesError(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	fn := PasswordFunc("alice")
	_, err = fn()
	assert.Error(t, err)
}

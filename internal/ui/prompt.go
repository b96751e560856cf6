package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PromptPassword reads a password from the terminal with echo disabled.
// The prompt goes to stderr so stdout stays clean for piped output.
func PromptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; cannot prompt for a password")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

// PasswordFunc returns a password callback that prompts once and caches the
// answer for the rest of the run.
func PasswordFunc(user string) func() (string, error) {
	var cached string
	var asked bool
	return func() (string, error) {
		if asked {
			return cached, nil
		}
		password, err := PromptPassword(fmt.Sprintf("Enter vSphere password for %s: ", user))
		if err != nil {
			return "", err
		}
		cached = password
		asked = true
		return cached, nil
	}
}

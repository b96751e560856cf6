// Package session provides the remote management session that action
// handlers invoke operations through. The real implementation runs the
// management CLI on the vSphere management host over SSH; the recording
// implementation backs --dry-run and tests.
package session

import "context"

// Session is the capability handlers get. Invoke runs one management
// operation with its arguments and returns the operation's stdout.
type Session interface {
	Invoke(ctx context.Context, op string, args ...string) ([]byte, error)
	Close() error
}

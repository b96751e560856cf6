package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/kalgynirae/netlaborious/internal/logger"
)

// Call is one recorded operation.
type Call struct {
	Op   string
	Args []string
}

// Recording is a Session that performs nothing remotely. It backs --dry-run
// (every operation is logged and succeeds) and tests (invocations and canned
// results are inspectable).
type Recording struct {
	mu     sync.Mutex
	calls  []Call
	closed bool

	// Output maps an operation name to its canned stdout.
	Output map[string][]byte

	// Fail maps an operation name to the error Invoke returns for it.
	Fail map[string]error

	Log logger.Logger
}

// NewRecording creates a Recording session.
func NewRecording(log logger.Logger) *Recording {
	if log == nil {
		log = logger.Default()
	}
	return &Recording{Log: log}
}

// Invoke records the call and returns the canned result for the operation.
func (r *Recording) Invoke(ctx context.Context, op string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	r.Log.Info("dry-run: %s %v", op, args)

	if err, ok := r.Fail[op]; ok {
		return nil, err
	}
	if out, ok := r.Output[op]; ok {
		return out, nil
	}
	return nil, nil
}

// Calls returns a copy of the recorded invocations in order.
func (r *Recording) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Close marks the session closed. Double close is an error so tests catch
// lifecycle mistakes.
func (r *Recording) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("session already closed")
	}
	r.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (r *Recording) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

package batch

import "fmt"

// ParseError is a lex or line-parse failure recorded during collection.
// Line is 1-based; zero means the input had no line context (single-command
// mode).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return lineMsg(e.Line, e.Msg)
}

// ValidationError is an unknown-command or missing-options failure recorded
// during validation. Never raised mid-pipeline; accumulated and reported
// together.
type ValidationError struct {
	Line int
	Msg  string
}

func (e *ValidationError) Error() string {
	return lineMsg(e.Line, e.Msg)
}

func lineMsg(line int, msg string) string {
	if line > 0 {
		return fmt.Sprintf("[line %d] %s", line, msg)
	}
	return msg
}

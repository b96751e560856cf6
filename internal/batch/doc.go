// Package batch implements the command interpreter behind netlab's single
// and batch execution modes.
//
// The pipeline runs in stages:
//
//   - Tokenize splits one line of text into shell-style words, honoring
//     quoting and stripping comments.
//   - ParseLine classifies words into one command name and a set of options.
//   - Merge resolves a line's options against the persistent set carried
//     forward from ARGS lines.
//   - Registry maps command names to handler descriptors that declare each
//     handler's required and optional options.
//   - Runner drives the whole thing: it collects every line, validates every
//     resolved invocation against its descriptor, and only when the entire
//     batch is clean invokes handlers in input order.
//
// # Two-phase discipline
//
// A batch either validates completely or nothing in it runs. All lex, parse,
// and validation errors are accumulated with their line numbers and reported
// together, so the operator sees every problem in one pass. Handler failures
// during execution are contained per invocation: they are logged and the
// remaining invocations still run.
//
// # Persistent options
//
// A line whose command word is ARGS updates the persistent option set instead
// of producing an invocation. The update replaces the previous set wholesale.
// Subsequent lines see persistent options merged beneath their own; explicit
// options always win.
//
// The interpreter knows nothing about what a handler does. Handlers are
// opaque callables registered with an explicit descriptor; the interpreter's
// job ends at calling them with resolved, validated option values.
package batch

package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/logger"
	"github.com/kalgynirae/netlaborious/internal/util"
)

// Invocation is one fully resolved command: its name, the option set after
// the persistent merge, and where it came from. Line is zero and Source
// empty in single-command mode.
type Invocation struct {
	Name   string
	Opts   Options
	Line   int
	Source string
}

// Runner drives the collect/validate/execute pipeline over a batch input or
// a single argument vector. A Runner is reusable; all per-run state
// (persistent options, accumulated errors) lives inside each call.
type Runner struct {
	Registry *Registry
	Comment  rune      // comment marker for batch lines
	Out      io.Writer // echo-back of executed lines
	Err      io.Writer // diagnostics channel
	Log      logger.Logger
}

// NewRunner creates a Runner with the default comment marker and standard
// output streams.
func NewRunner(reg *Registry) *Runner {
	return &Runner{
		Registry: reg,
		Comment:  DefaultComment,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Log:      logger.Default(),
	}
}

// RunBatch reads logical command lines from input and runs them under the
// two-phase discipline: every line is tokenized, parsed, and validated
// first, and handlers only run when the whole batch is clean. Returns a
// VALIDATE-coded error when anything failed validation (no handler has run),
// or an EXEC-coded error when handlers ran and some failed.
func (r *Runner) RunBatch(ctx context.Context, input io.Reader) error {
	invocations, errs := r.collect(input)
	errs = append(errs, r.validate(invocations)...)

	if len(errs) > 0 {
		r.report(errs)
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Batch aborted with %d %s", len(errs), util.Pluralize(len(errs), "error", "errors")),
			"Fix the reported lines and rerun the batch")
	}

	return r.execute(ctx, invocations)
}

// RunArgs runs a single command given as an argument vector. The same
// pipeline applies, with no line numbers in diagnostics.
func (r *Runner) RunArgs(ctx context.Context, words []string) error {
	var errs []error
	var invocations []Invocation

	name, opts, err := ParseLine(words)
	switch {
	case err != nil:
		errs = append(errs, &ParseError{Msg: err.Error()})
	case name == PersistentCommand:
		errs = append(errs, &ValidationError{Msg: fmt.Sprintf("%s is only valid in batch mode", PersistentCommand)})
	default:
		invocations = append(invocations, Invocation{Name: name, Opts: opts})
	}

	errs = append(errs, r.validate(invocations)...)
	if len(errs) > 0 {
		r.report(errs)
		return errors.New(errors.ErrValidate,
			"Command validation failed",
			"Fix the reported problems and rerun")
	}

	return r.execute(ctx, invocations)
}

// collect tokenizes and parses every input line, carrying the persistent
// option set forward. Errors do not stop collection; every line gets a
// chance to report its own problem.
func (r *Runner) collect(input io.Reader) ([]Invocation, []error) {
	var invocations []Invocation
	var errs []error
	persistent := make(Options)

	comment := r.Comment
	if comment == 0 {
		comment = DefaultComment
	}

	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		source := scanner.Text()

		words, err := TokenizeWith(source, comment)
		if err != nil {
			errs = append(errs, &ParseError{Line: lineNo, Msg: err.Error()})
			continue
		}
		if len(words) == 0 {
			continue
		}

		name, opts, err := ParseLine(words)
		if err != nil {
			errs = append(errs, &ParseError{Line: lineNo, Msg: err.Error()})
			continue
		}

		if name == PersistentCommand {
			// Replace wholesale: options absent from this ARGS line are gone.
			persistent = opts.Clone()
			r.Log.Debug("persistent options replaced at line %d: %v", lineNo, persistent)
			continue
		}

		invocations = append(invocations, Invocation{
			Name:   name,
			Opts:   Merge(persistent, opts),
			Line:   lineNo,
			Source: source,
		})
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, &ParseError{Line: lineNo, Msg: fmt.Sprintf("reading input: %v", err)})
	}

	return invocations, errs
}

// validate checks every invocation against the registry: the command must
// exist and every required flag must be present in the resolved option set.
// Missing flags for one invocation are reported together in one error.
func (r *Runner) validate(invocations []Invocation) []error {
	var errs []error

	for _, inv := range invocations {
		desc, ok := r.Registry.Lookup(inv.Name)
		if !ok {
			msg := fmt.Sprintf("invalid command %s", inv.Name)
			if suggestions := util.SuggestSimilar(inv.Name, r.Registry.Names(), 3); len(suggestions) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, " or "))
			}
			errs = append(errs, &ValidationError{Line: inv.Line, Msg: msg})
			continue
		}

		var missing []string
		for _, flag := range desc.RequiredFlags() {
			if _, present := inv.Opts[flag]; !present {
				missing = append(missing, flag)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, &ValidationError{
				Line: inv.Line,
				Msg: fmt.Sprintf("command %s missing required %s: %s",
					inv.Name,
					util.Pluralize(len(missing), "option", "options"),
					strings.Join(missing, ", ")),
			})
		}
	}

	return errs
}

// execute invokes every handler strictly in input order. Handler failures
// are contained per invocation: logged, counted, and the run continues so
// later lines still get their chance.
func (r *Runner) execute(ctx context.Context, invocations []Invocation) error {
	failed := 0

	for _, inv := range invocations {
		if inv.Source != "" {
			fmt.Fprintln(r.Out, inv.Source)
		}

		logInvocation := r.Log.Debug
		if _, verbose := inv.Opts[VerboseFlag]; verbose {
			logInvocation = r.Log.Info
		}
		logInvocation("running command %s with options %v", inv.Name, inv.Opts)

		desc, _ := r.Registry.Lookup(inv.Name)

		required := make([]string, len(desc.Required))
		for i, param := range desc.Required {
			required[i] = inv.Opts[Flag(param)]
		}

		optional := make(map[string]string)
		for _, param := range desc.Optional {
			if value, present := inv.Opts[Flag(param)]; present {
				optional[param] = value
			}
		}

		if err := desc.Run(ctx, required, optional); err != nil {
			failed++
			r.Log.Error("command %s failed: %v", inv.Name, err)
			fmt.Fprintln(r.Err, lineMsg(inv.Line, fmt.Sprintf("command %s failed: %v", inv.Name, err)))
		}
	}

	if failed > 0 {
		return errors.New(errors.ErrExec,
			fmt.Sprintf("%d of %d %s failed", failed, len(invocations), util.Pluralize(len(invocations), "command", "commands")),
			"Check the diagnostics above for the failing lines")
	}
	return nil
}

// report writes every accumulated error to the diagnostics channel followed
// by the abort summary. Nothing has been executed when this runs.
func (r *Runner) report(errs []error) {
	for _, err := range errs {
		fmt.Fprintln(r.Err, err.Error())
	}
	fmt.Fprintln(r.Err, "aborting due to errors; no commands were run")
}

package batch

// Options maps an option flag (including the leading "--") to its value.
// No-value flags are present with an empty string; the static NoValueFlags
// set fixes which flags take no value, so the representation is unambiguous.
type Options map[string]string

// Merge resolves a line's explicit options against the persistent set.
// The result starts from a copy of persistent and is overwritten by every
// entry in line. Neither input is modified. No validation happens here;
// required-option checking depends on the command the options resolve for,
// which is the Runner's job.
func Merge(persistent, line Options) Options {
	merged := make(Options, len(persistent)+len(line))
	for flag, value := range persistent {
		merged[flag] = value
	}
	for flag, value := range line {
		merged[flag] = value
	}
	return merged
}

// Clone returns a copy of the option set.
func (o Options) Clone() Options {
	c := make(Options, len(o))
	for flag, value := range o {
		c[flag] = value
	}
	return c
}

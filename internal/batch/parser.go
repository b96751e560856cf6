package batch

import (
	"fmt"
	"strings"
)

// OptionMarker prefixes every option flag.
const OptionMarker = "--"

// VerboseFlag surfaces the invocation detail for the line that carries it,
// without turning on debug logging globally.
const VerboseFlag = "--verbose"

// NoValueFlags is the static set of flags that take no value. Presence is
// the whole signal; the next word is never consumed as their value.
var NoValueFlags = map[string]bool{
	VerboseFlag: true,
}

// ParseLine classifies a word sequence into exactly one command name and an
// option set. Words starting with the option marker are flags; a flag not in
// NoValueFlags consumes the following word as its value. The first word that
// is neither a flag nor a flag's value is the command name. A later
// occurrence of a flag overwrites an earlier one within the same line.
func ParseLine(words []string) (string, Options, error) {
	var command string
	opts := make(Options)

	for i := 0; i < len(words); i++ {
		word := words[i]

		if strings.HasPrefix(word, OptionMarker) && len(word) > len(OptionMarker) {
			if NoValueFlags[word] {
				opts[word] = ""
				continue
			}
			if i+1 >= len(words) {
				return "", nil, fmt.Errorf("option %s missing a value", word)
			}
			i++
			opts[word] = words[i]
			continue
		}

		if command != "" {
			return "", nil, fmt.Errorf("multiple commands given")
		}
		command = word
	}

	if command == "" {
		return "", nil, fmt.Errorf("missing required command")
	}

	return command, opts, nil
}

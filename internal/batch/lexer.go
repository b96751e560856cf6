package batch

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultComment is the comment marker used when none is configured.
const DefaultComment = '#'

// Tokenize splits a line into shell-style words using the default comment
// marker. Blank and comment-only lines produce an empty slice.
func Tokenize(line string) ([]string, error) {
	return TokenizeWith(line, DefaultComment)
}

// TokenizeWith splits a line into shell-style words. Single quotes group
// words literally, double quotes group words while honoring backslash
// escapes for `"` and `\`, and a bare backslash escapes the next character.
// The comment rune and everything after it, outside quotes, is discarded.
// An unterminated quote or a trailing backslash is an error.
func TokenizeWith(line string, comment rune) ([]string, error) {
	var words []string
	var cur strings.Builder
	inWord := false

	flush := func() {
		if inWord {
			words = append(words, cur.String())
			cur.Reset()
			inWord = false
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case c == comment:
			flush()
			return words, nil

		case c == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash")
			}
			i++
			cur.WriteRune(runes[i])
			inWord = true

		case c == '\'':
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			cur.WriteString(string(runes[i+1 : end]))
			inWord = true
			i = end

		case c == '"':
			closed := false
			i++
			for ; i < len(runes); i++ {
				if runes[i] == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
					i++
					cur.WriteRune(runes[i])
					continue
				}
				if runes[i] == '"' {
					closed = true
					break
				}
				cur.WriteRune(runes[i])
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double quote")
			}
			inWord = true

		case unicode.IsSpace(c):
			flush()

		default:
			cur.WriteRune(c)
			inWord = true
		}
	}

	flush()
	return words, nil
}

// indexRune returns the index of the first occurrence of r in runes at or
// after start, or -1.
func indexRune(runes []rune, start int, r rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

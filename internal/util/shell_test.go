package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain string",
			input: "web01",
			want:  "'web01'",
		},
		{
			name:  "string with spaces",
			input: "SAFETY NET",
			want:  "'SAFETY NET'",
		},
		{
			name:  "string with single quote",
			input: "it's",
			want:  "'it'\\''s'",
		},
		{
			name:  "empty string",
			input: "",
			want:  "''",
		},
		{
			name:  "string with double quotes untouched",
			input: `say "hi"`,
			want:  `'say "hi"'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellQuote(tt.input))
		})
	}
}

func TestShellQuoteAll(t *testing.T) {
	got := ShellQuoteAll([]string{"vm.clone", "web01", "dest host"})
	assert.Equal(t, []string{"'vm.clone'", "'web01'", "'dest host'"}, got)

	assert.Empty(t, ShellQuoteAll(nil))
}

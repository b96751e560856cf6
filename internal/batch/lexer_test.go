package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  []string
	}{
		{
			name: "simple words",
			line: "clone --vm web01",
			want: []string{"clone", "--vm", "web01"},
		},
		{
			name: "whitespace runs collapse",
			line: "  clone    --vm \tweb01  ",
			want: []string{"clone", "--vm", "web01"},
		},
		{
			name: "blank line",
			line: "",
			want: nil,
		},
		{
			name: "whitespace-only line",
			line: "   \t  ",
			want: nil,
		},
		{
			name: "comment-only line",
			line: "# upload the nightly build",
			want: nil,
		},
		{
			name: "trailing comment stripped",
			line: "clone --vm web01 # nightly",
			want: []string{"clone", "--vm", "web01"},
		},
		{
			name: "comment rune inside single quotes kept",
			line: "upload --network 'NET #3'",
			want: []string{"upload", "--network", "NET #3"},
		},
		{
			name: "comment rune inside double quotes kept",
			line: `upload --network "NET #3"`,
			want: []string{"upload", "--network", "NET #3"},
		},
		{
			name: "single quotes group words",
			line: "upload --network 'SAFETY NET'",
			want: []string{"upload", "--network", "SAFETY NET"},
		},
		{
			name: "double quotes group words",
			line: `upload --folder "Test Folder"`,
			want: []string{"upload", "--folder", "Test Folder"},
		},
		{
			name: "quotes join adjacent text",
			line: `upload --folder Test' 'Folder`,
			want: []string{"upload", "--folder", "Test Folder"},
		},
		{
			name: "empty quoted word",
			line: "upload --folder ''",
			want: []string{"upload", "--folder", ""},
		},
		{
			name: "backslash escapes space",
			line: `upload --folder Test\ Folder`,
			want: []string{"upload", "--folder", "Test Folder"},
		},
		{
			name: "backslash escapes quote",
			line: `upload --name it\'s`,
			want: []string{"upload", "--name", "it's"},
		},
		{
			name: "escaped double quote inside double quotes",
			line: `upload --name "say \"hi\""`,
			want: []string{"upload", "--name", `say "hi"`},
		},
		{
			name: "backslash literal inside double quotes",
			line: `upload --path "C:\\temp"`,
			want: []string{"upload", "--path", `C:\temp`},
		},
		{
			name: "double quotes keep other backslashes",
			line: `upload --path "a\b"`,
			want: []string{"upload", "--path", `a\b`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "unterminated single quote",
			line: "upload --network 'SAFETY NET",
			want: "unterminated single quote",
		},
		{
			name: "unterminated double quote",
			line: `upload --folder "Test`,
			want: "unterminated double quote",
		},
		{
			name: "trailing backslash",
			line: `upload --folder Test\`,
			want: "trailing backslash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTokenizeWithCustomComment(t *testing.T) {
	got, err := TokenizeWith("clone --vm web01 ; nightly", ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"clone", "--vm", "web01"}, got)

	// Default marker is no longer special.
	got, err = TokenizeWith("clone --vm #web01", ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"clone", "--vm", "#web01"}, got)
}

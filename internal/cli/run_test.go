package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalgynirae/netlaborious/internal/errors"
)

// resetFlags puts the global flag state back between tests.
func resetFlags() {
	configFlag = ""
	verboseFlag = false
	dryRunFlag = false
	noColorFlag = false
	vshostFlag = ""
	vsuserFlag = ""
	vsportFlag = 0
	insecureFlag = false
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(resetFlags)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRunDryRunSingleCommand(t *testing.T) {
	err := execute(t, "--dry-run", "run", "--", "listvms")
	assert.NoError(t, err)
}

func TestRunValidationFailureExitsTwo(t *testing.T) {
	err := execute(t, "--dry-run", "run", "--", "clone", "--vm", "web01")
	require.Error(t, err)

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 2, code)
}

func TestRunUnknownCommandExitsTwo(t *testing.T) {
	err := execute(t, "--dry-run", "run", "--", "nosuchaction")
	require.Error(t, err)

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 2, code)
}

func TestRunWithNoWords(t *testing.T) {
	err := execute(t, "--dry-run", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No command given")
}

func TestBatchDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provision.netlab")
	content := `# provisioning pass
ARGS --folder shared
snapshot --vm web01 --snapshot nightly
clone --vm web01 --dest-host h2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	err := execute(t, "--dry-run", "batch", path)
	assert.NoError(t, err)
}

func TestBatchValidationFailureExitsTwo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.netlab")
	require.NoError(t, os.WriteFile(path, []byte("clone --vm\n"), 0644))

	err := execute(t, "--dry-run", "batch", path)
	require.Error(t, err)

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 2, code)
}

func TestBatchMissingFile(t *testing.T) {
	err := execute(t, "--dry-run", "batch", "/nonexistent/file.netlab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't open batch file")
}

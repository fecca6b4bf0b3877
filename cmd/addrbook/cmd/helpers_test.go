package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points config and logs at temp dirs and clears ADDRBOOK_* env.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{
		"ADDRBOOK_BOOK_PATH", "ADDRBOOK_LOG_LEVEL", "ADDRBOOK_PROMPT",
		"ADDRBOOK_RETRY_ATTEMPTS", "ADDRBOOK_NO_COLOR",
	} {
		t.Setenv(k, "")
	}
}

// chdir runs the test from a fresh temp dir so no project config applies.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })
	return dir
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with args and stdin.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newBook returns an isolated environment and a book path inside it.
func newBook(t *testing.T) string {
	t.Helper()
	isolate(t)
	return filepath.Join(chdir(t), "contacts.tsv")
}

func addContact(t *testing.T, path, first, last, address, phone string) {
	t.Helper()
	r := run(t, "", "add", "-b", path, "--first", first, "--last", last, "--address", address, "--phone", phone)
	require.NoError(t, r.err, r.stderr)
}

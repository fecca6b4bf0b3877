package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTTY_NonFileWriters(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	assert.False(t, IsTTY(f))
	assert.False(t, IsInteractive(f))
}

func TestIsInteractive_NonFileReader(t *testing.T) {
	assert.False(t, IsInteractive(strings.NewReader("list\n")))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())

	os.Unsetenv("NO_COLOR")
	assert.False(t, DetectNoColor())
}

func TestUseColor(t *testing.T) {
	// A buffer is never a terminal.
	assert.False(t, UseColor(&bytes.Buffer{}, false))
	assert.False(t, UseColor(&bytes.Buffer{}, true))
}

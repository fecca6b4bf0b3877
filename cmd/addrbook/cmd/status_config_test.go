package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/addrbook/internal/config"
	"github.com/Aman-CERP/addrbook/internal/persist"
	"github.com/Aman-CERP/addrbook/internal/ui"
	"github.com/Aman-CERP/addrbook/pkg/version"
)

func TestStatusCmd_Text(t *testing.T) {
	path := seedBook(t)

	r := run(t, "", "status", path)

	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Contacts:       3")
	assert.Contains(t, r.stdout, "Last id:        3")
	assert.Contains(t, r.stdout, "1 shared")
	assert.Contains(t, r.stdout, "Lock:     free")
}

func TestStatusCmd_JSONWithLockHeld(t *testing.T) {
	// Given: a seeded book whose lock is held
	path := seedBook(t)
	lock := persist.NewFileLock(path)
	require.NoError(t, lock.Lock())
	defer func() { _ = lock.Unlock() }()

	// When: asking for JSON status
	r := run(t, "", "status", path, "--format", "json")

	// Then: counts and lock state are reported
	require.NoError(t, r.err)
	var info ui.StatusInfo
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &info))
	assert.Equal(t, 3, info.Contacts)
	assert.Equal(t, uint64(3), info.LastAssignedID)
	assert.Equal(t, 3, info.DistinctNames)
	assert.Equal(t, 2, info.DistinctPhones)
	assert.Equal(t, 1, info.SharedPhones)
	assert.Positive(t, info.FileSize)
	assert.True(t, info.LockHeld)
}

func TestDoctorCmd_ReadyBook(t *testing.T) {
	path := newBook(t)
	addContact(t, path, "Ada", "Lovelace", "London", "555-0100")

	r := run(t, "", "doctor", path)
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "[PASS] book_file: 1 contacts")
	assert.Contains(t, r.stdout, "Status: READY")
}

func TestDoctorCmd_BrokenBookFails(t *testing.T) {
	// Given: a book with a malformed second line
	path := newBook(t)
	require.NoError(t, os.WriteFile(path, []byte("1\tAda\tLovelace\tLondon\t555-0100\nbroken\n"), 0644))

	// When: checking it as JSON
	r := run(t, "", "doctor", path, "--format", "json")

	// Then: the command fails and reports the line
	require.Error(t, r.err)
	var got struct {
		Status  string `json:"status"`
		Results []struct {
			Name    string `json:"name"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "failed", got.Status)
	require.NotEmpty(t, got.Results)
	assert.Equal(t, "book_file", got.Results[0].Name)
	assert.Equal(t, "fail", got.Results[0].Status)
	assert.Contains(t, got.Results[0].Message, "line 2")
}

func TestConfigInit_CreatesThenWarns(t *testing.T) {
	isolate(t)
	chdir(t)

	// When: creating the user config
	r := run(t, "", "config", "init")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Created user configuration")
	assert.FileExists(t, config.GetUserConfigPath())

	// Then: a second init leaves it alone
	r = run(t, "", "config", "init")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "already exists")
}

func TestConfigInit_ForceKeepsBackups(t *testing.T) {
	isolate(t)
	chdir(t)
	require.NoError(t, run(t, "", "config", "init").err)
	require.NoError(t, os.WriteFile(config.GetUserConfigPath(), []byte("shell:\n  prompt: \"custom> \"\n"), 0644))

	r := run(t, "", "config", "init", "--force")

	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Backup: ")
	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom> ")
}

func TestConfigInit_Project(t *testing.T) {
	isolate(t)
	dir := chdir(t)

	r := run(t, "", "config", "init", "--project")

	require.NoError(t, r.err)
	assert.FileExists(t, filepath.Join(dir, ".addrbook.yaml"))
}

func TestConfigShowAndPath(t *testing.T) {
	isolate(t)
	chdir(t)

	r := run(t, "", "config", "path")
	require.NoError(t, r.err)
	assert.Equal(t, config.GetUserConfigPath(), strings.TrimSpace(r.stdout))

	r = run(t, "", "config", "show", "--source", "defaults")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "path: contacts.tsv")

	r = run(t, "", "config", "show", "--json")
	require.NoError(t, r.err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &cfg))
	assert.Equal(t, "> ", cfg.Shell.Prompt)

	r = run(t, "", "config", "show", "--source", "user")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No user configuration file found")

	r = run(t, "", "config", "show", "--source", "bogus")
	assert.Error(t, r.err)
}

func TestLogsCmd(t *testing.T) {
	isolate(t)
	dir := chdir(t)
	logFile := filepath.Join(dir, "test.log")
	lines := []string{
		`{"time":"2026-01-02T10:00:00.000Z","level":"DEBUG","msg":"book loaded","contacts":3}`,
		`{"time":"2026-01-02T10:00:01.000Z","level":"INFO","msg":"contact added","id":4}`,
		`{"time":"2026-01-02T10:00:02.000Z","level":"ERROR","msg":"append failed","id":5}`,
	}
	require.NoError(t, os.WriteFile(logFile, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	r := run(t, "", "logs", "--file", logFile, "--level", "info")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "book loaded")
	assert.Contains(t, r.stdout, "contact added")
	assert.Contains(t, r.stdout, "append failed")
	assert.Contains(t, r.stderr, "Log file: "+logFile)

	r = run(t, "", "logs", "--file", logFile, "--grep", "append")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "contact added")
	assert.Contains(t, r.stdout, "append failed")

	r = run(t, "", "logs", "--file", logFile, "-n", "1")
	require.NoError(t, r.err)
	assert.Equal(t, 1, strings.Count(r.stdout, "\n"))

	assert.Error(t, run(t, "", "logs", "--file", logFile, "--level", "loud").err)
	assert.Error(t, run(t, "", "logs", "--file", logFile, "--grep", "(").err)
	assert.Error(t, run(t, "", "logs", "--file", filepath.Join(dir, "missing.log")).err)
}

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, stdout string)
	}{
		{
			name: "details",
			args: []string{"version"},
			check: func(t *testing.T, stdout string) {
				assert.Contains(t, stdout, "addrbook "+version.Version)
				assert.Contains(t, stdout, "book format:   tab-separated, 5 fields per contact")
				assert.Contains(t, stdout, "export schema: 1")
			},
		},
		{
			name: "short",
			args: []string{"version", "--short"},
			check: func(t *testing.T, stdout string) {
				assert.Equal(t, version.Version, strings.TrimSpace(stdout))
			},
		},
		{
			name: "json flag",
			args: []string{"version", "--json"},
			check: func(t *testing.T, stdout string) {
				var info version.Info
				require.NoError(t, json.Unmarshal([]byte(stdout), &info))
				assert.Equal(t, version.Version, info.Version)
				assert.Equal(t, 5, info.BookFields)
			},
		},
		{
			name: "json format",
			args: []string{"version", "--format", "json"},
			check: func(t *testing.T, stdout string) {
				var info version.Info
				require.NoError(t, json.Unmarshal([]byte(stdout), &info))
				assert.Equal(t, 1, info.ExportSchema)
			},
		},
		{
			name: "root flag",
			args: []string{"--version"},
			check: func(t *testing.T, stdout string) {
				assert.True(t, strings.HasPrefix(stdout, "addrbook "+version.Version+" ("))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Each run builds a fresh command tree, so no flag leaks between rows
			isolate(t)
			chdir(t)
			r := run(t, "", tt.args...)
			require.NoError(t, r.err, r.stderr)
			tt.check(t, r.stdout)
		})
	}
}

package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/export"
)

func TestGet_DescribesFormats(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, codec.FieldCount, info.BookFields)
	assert.Equal(t, export.SchemaVersion, info.ExportSchema)
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.Date)
}

func TestGet_PrefersLdflagsStamps(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })

	Commit, Date = "abc123", "2026-01-02T03:04:05Z"

	info := Get()
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.Date)
}

func TestFillFromBuildInfo(t *testing.T) {
	// Given: VCS stamps from go build
	bi := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-10-18T09:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}}

	// When: nothing was set with ldflags
	var info Info
	fillFromBuildInfo(&info, bi)

	// Then: the stamps are used and the short form marks the tree dirty
	assert.Equal(t, "0123456789abcdef0123", info.Commit)
	assert.Equal(t, "2026-10-18T09:00:00Z", info.Date)
	assert.True(t, info.Modified)

	info.Version, info.GoVersion, info.Platform = "v1.0.0", "go1.25.5", "linux/amd64"
	assert.Equal(t, "addrbook v1.0.0 (0123456789ab+dirty, go1.25.5, linux/amd64)", info.String())
}

func TestInfo_Details(t *testing.T) {
	info := Info{Version: "dev", Commit: "unknown", Date: "unknown", BookFields: 5, ExportSchema: 1}

	details := info.Details()
	assert.Contains(t, details, "addrbook dev (unknown")
	assert.Contains(t, details, "book format:   tab-separated, 5 fields per contact")
	assert.Contains(t, details, "export schema: 1")
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestInfo_JSON(t *testing.T) {
	data, err := json.Marshal(Get())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "platform", "book_fields", "export_schema"} {
		assert.Contains(t, parsed, key)
	}
}

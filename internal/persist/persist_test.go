package persist

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/addrbook/internal/book"
	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_TwoRecords(t *testing.T) {
	// Given: a file with two records
	path := writeFile(t, "1\tA\tB\tAddr\t111\n2\tC\tD\tAddr\t222\n")

	// When: loading it
	b, err := Load(path)

	// Then: both contacts are indexed and the last id is 2
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, contact.ID(2), b.LastAssignedID())

	got := b.FindByName("C D")
	require.Len(t, got, 1)
	assert.Equal(t, contact.ID(2), got[0].ID)
	assert.Equal(t, "222", got[0].PhoneNumber)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "")

	b, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, contact.ID(0), b.LastAssignedID())
}

func TestLoad_SkipsBlankLinesAndCRLF(t *testing.T) {
	path := writeFile(t, "1\tA\tB\tAddr\t111\r\n\n\r\n2\tC\tD\tAddr\t222")

	b, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	c, ok := b.Get(1)
	require.True(t, ok)
	assert.Equal(t, "111", c.PhoneNumber)
}

func TestLoad_MalformedLineAbortsLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode string
		wantLine string
	}{
		{
			name:     "too few fields",
			content:  "1\tA\tB\tAddr\t111\n2\tC\tD\n",
			wantCode: errors.ErrCodeInvalidFieldCount,
			wantLine: "2",
		},
		{
			name:     "non-numeric id",
			content:  "x\tA\tB\tAddr\t111\n",
			wantCode: errors.ErrCodeInvalidID,
			wantLine: "1",
		},
		{
			name:     "id beyond the id range",
			content:  "1\tA\tB\tAddr\t111\n18446744073709551615\tC\tD\tAddr\t222\n",
			wantCode: errors.ErrCodeInvalidID,
			wantLine: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			b, err := Load(path)

			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.IsDecodeError(err))
			assert.Equal(t, tt.wantCode, errors.GetCode(err))

			var be *errors.BookError
			require.True(t, stderrors.As(err, &be))
			assert.Equal(t, tt.wantLine, be.Details["line"])
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.tsv")

	b, err := Load(path)

	require.Error(t, err)
	assert.Nil(t, b)
	assert.True(t, stderrors.Is(err, errors.ErrLoad))
	assert.True(t, errors.IsFatal(err))
}

func TestLoadOrCreate(t *testing.T) {
	t.Run("missing file gives empty book", func(t *testing.T) {
		b, err := LoadOrCreate(filepath.Join(t.TempDir(), "missing.tsv"))
		require.NoError(t, err)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("malformed file still fails", func(t *testing.T) {
		b, err := LoadOrCreate(writeFile(t, "bad\n"))
		require.Error(t, err)
		assert.Nil(t, b)
	})
}

func TestAppend_ThenLoad(t *testing.T) {
	// Given: an empty directory
	path := filepath.Join(t.TempDir(), "contacts.tsv")
	b := book.New()

	// When: adding and appending two contacts
	for _, names := range [][2]string{{"Ada", "Lovelace"}, {"Alan", "Turing"}} {
		c := b.NewContact(names[0], names[1], "London", "555-0100")
		b.Add(c)
		require.NoError(t, Append(path, c))
	}

	// Then: the file holds one line per contact
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"1\tAda\tLovelace\tLondon\t555-0100\n2\tAlan\tTuring\tLondon\t555-0100\n",
		string(data))

	// And: reloading reproduces the book
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.List(), loaded.List())
	assert.Equal(t, b.LastAssignedID(), loaded.LastAssignedID())
}

func TestAppend_FailureIsRetryableWriteError(t *testing.T) {
	// Given: a path that is a directory
	path := t.TempDir()

	err := Append(path, contact.New("A", "B", "", "1", 0))

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrWrite))
	assert.True(t, errors.IsRetryable(err))
}

func TestAppendWithRetry_GivesUpAfterPolicy(t *testing.T) {
	path := t.TempDir()
	cfg := errors.RetryConfig{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}

	err := AppendWithRetry(context.Background(), path, contact.New("A", "B", "", "1", 0), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 retries")
	assert.True(t, stderrors.Is(err, errors.ErrWrite))
}

func TestAppendWithRetry_Succeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.tsv")

	err := AppendWithRetry(context.Background(), path, contact.New("A", "B", "", "1", 0), errors.DefaultRetryConfig())

	require.NoError(t, err)
	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestAppendWithRetry_PartialWriteIsRolledBack(t *testing.T) {
	// Given: a book whose next append is cut off halfway through the line
	path := writeFile(t, "1\tAda\tLovelace\tLondon\t555-0100\n")
	calls := 0
	orig := writeLine
	writeLine = func(f *os.File, line string) (int, error) {
		calls++
		if calls == 1 {
			n, _ := f.WriteString(line[:len(line)/2])
			return n, stderrors.New("disk full")
		}
		return orig(f, line)
	}
	t.Cleanup(func() { writeLine = orig })

	cfg := errors.RetryConfig{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	c := contact.New("Alan", "Turing", "Wilmslow", "555-0200", 1)

	// When: appending with one retry
	require.NoError(t, AppendWithRetry(context.Background(), path, c, cfg))

	// Then: the half line is gone and the file loads
	assert.Equal(t, 2, calls)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\tAda\tLovelace\tLondon\t555-0100\n2\tAlan\tTuring\tWilmslow\t555-0200\n", string(data))
	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestAppend_FailedWriteLeavesFileUnchanged(t *testing.T) {
	path := writeFile(t, "1\tAda\tLovelace\tLondon\t555-0100\n")
	orig := writeLine
	writeLine = func(f *os.File, line string) (int, error) {
		n, _ := f.WriteString(line[:3])
		return n, stderrors.New("short write")
	}
	t.Cleanup(func() { writeLine = orig })

	err := Append(path, contact.New("Alan", "Turing", "Wilmslow", "555-0200", 1))

	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, "1\tAda\tLovelace\tLondon\t555-0100\n", string(data))
}

func TestSave_RewritesAfterDelete(t *testing.T) {
	// Given: a persisted book of three contacts
	path := writeFile(t, "1\tA\tA\tx\t1\n2\tB\tB\tx\t2\n3\tC\tC\tx\t3\n")
	b, err := Load(path)
	require.NoError(t, err)

	// When: deleting one and saving
	_, ok := b.Delete(2)
	require.True(t, ok)
	require.NoError(t, Save(path, b))

	// Then: the file no longer holds it and no temp file is left
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\tA\tA\tx\t1\n3\tC\tC\tx\t3\n", string(data))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "contacts.tsv")
	b := book.New()
	b.Add(b.NewContact("Ada", "Lovelace", "London", "555-0100"))

	require.NoError(t, Save(path, b))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.List(), loaded.List())
}

func TestSave_FailureIsWriteError(t *testing.T) {
	// Given: the target path is an existing directory
	path := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0644))

	err := Save(path, book.New())

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrWrite))
}

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

func seedBook(t *testing.T) string {
	t.Helper()
	path := newBook(t)
	addContact(t, path, "Ada", "Lovelace", "London", "555-0100")
	addContact(t, path, "Alan", "Turing", "Wilmslow", "555-0200")
	addContact(t, path, "Grace", "Hopper", "Arlington", "555-0100")
	return path
}

func TestAddCmd_AppendsToFile(t *testing.T) {
	// Given: an empty book path
	path := newBook(t)

	// When: adding a contact
	r := run(t, "", "add", "-b", path, "--first", "Ada", "--last", "Lovelace", "--address", "London", "--phone", "555-0100")

	// Then: it is reported and appended
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Added contact 1")
	assert.Contains(t, r.stdout, "ID: 1, Name: Ada Lovelace")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\tAda\tLovelace\tLondon\t555-0100\n", string(data))
}

func TestAddCmd_JSON(t *testing.T) {
	path := newBook(t)

	r := run(t, "", "add", "-b", path, "--format", "json", "--first", "Ada", "--last", "Lovelace", "--phone", "555")
	require.NoError(t, r.err)

	var c contact.Contact
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &c))
	assert.Equal(t, contact.Contact{ID: 1, FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "555"}, c)
}

func TestAddCmd_IDsContinueAfterDelete(t *testing.T) {
	path := seedBook(t)

	require.NoError(t, run(t, "", "delete", "2", path).err)
	addContact(t, path, "Katherine", "Johnson", "Hampton", "555-0300")

	b, err := persist.Load(path)
	require.NoError(t, err)
	_, ok := b.Get(2)
	assert.False(t, ok)
	_, ok = b.Get(4)
	assert.True(t, ok, "new contact should get the next id, not the freed one")
}

func TestAddCmd_RefusesWhenIDsAreExhausted(t *testing.T) {
	// Given: a book whose last id is the largest allowed
	path := newBook(t)
	content := "9223372036854775807\tAda\tLovelace\tLondon\t555-0100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// When: adding another contact
	r := run(t, "", "add", "-b", path, "--first", "Alan", "--last", "Turing", "--phone", "555-0200")

	// Then: the add fails and the file is untouched
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeInvalidID, errors.GetCode(r.err))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestAddCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"tab in address", []string{"--first", "Ada", "--last", "L", "--address", "a\tb"}, errors.ErrCodeInvalidInput},
		{"missing last name", []string{"--first", "Ada"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := newBook(t)
			r := run(t, "", append([]string{"add", "-b", path}, tt.args...)...)

			require.Error(t, r.err)
			if tt.code != "" {
				assert.Equal(t, tt.code, errors.GetCode(r.err))
			}
			assert.NoFileExists(t, path)
		})
	}
}

func TestAddCmd_Unique(t *testing.T) {
	path := seedBook(t)

	// Duplicate name and phone is allowed by default
	r := run(t, "", "add", "-b", path, "--first", "Ada", "--last", "Lovelace", "--phone", "555-0100")
	require.NoError(t, r.err)

	// but refused with --unique
	r = run(t, "", "add", "-b", path, "--unique", "--first", "Ada", "--last", "Lovelace", "--phone", "555-0100")
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeDuplicateContact, errors.GetCode(r.err))

	b, err := persist.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())
}

func TestListCmd(t *testing.T) {
	t.Run("empty book", func(t *testing.T) {
		path := newBook(t)

		r := run(t, "", "list", path)

		require.NoError(t, r.err)
		assert.Equal(t, "No contacts found.\n", r.stdout)
	})

	t.Run("ordered by id", func(t *testing.T) {
		path := seedBook(t)

		r := run(t, "", "list", path)

		require.NoError(t, r.err)
		assert.Equal(t,
			"ID: 1, Name: Ada Lovelace, Address: London, Phone: 555-0100\n"+
				"ID: 2, Name: Alan Turing, Address: Wilmslow, Phone: 555-0200\n"+
				"ID: 3, Name: Grace Hopper, Address: Arlington, Phone: 555-0100\n",
			r.stdout)
	})

	t.Run("json empty is an array", func(t *testing.T) {
		path := newBook(t)

		r := run(t, "", "list", path, "--format", "json")

		require.NoError(t, r.err)
		assert.JSONEq(t, "[]", r.stdout)
	})
}

func TestFindCmd(t *testing.T) {
	path := seedBook(t)

	tests := []struct {
		name    string
		args    []string
		wantIDs []contact.ID
	}{
		{"by phone keeps insertion order", []string{"--phone", "555-0100"}, []contact.ID{1, 3}},
		{"by name", []string{"--name", "Alan Turing"}, []contact.ID{2}},
		{"by id", []string{"--id", "3"}, []contact.ID{3}},
		{"unknown name", []string{"--name", "Nobody"}, nil},
		{"missing id", []string{"--id", "99"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", append([]string{"find", path, "--format", "json"}, tt.args...)...)
			require.NoError(t, r.err, r.stderr)

			var found []contact.Contact
			require.NoError(t, json.Unmarshal([]byte(r.stdout), &found))
			var ids []contact.ID
			for _, c := range found {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFindCmd_FlagErrors(t *testing.T) {
	path := seedBook(t)

	assert.Error(t, run(t, "", "find", path).err, "one of the flags is required")
	assert.Error(t, run(t, "", "find", path, "--name", "A", "--phone", "1").err, "flags are exclusive")

	r := run(t, "", "find", path, "--id", "abc")
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(r.err))
}

func TestFindCmd_TextNoMatch(t *testing.T) {
	path := seedBook(t)

	r := run(t, "", "find", path, "--phone", "000")

	require.NoError(t, r.err)
	assert.Equal(t, "No contacts found.\n", r.stdout)
}

func TestDeleteCmd(t *testing.T) {
	// Given: a seeded book
	path := seedBook(t)

	// When: deleting id 2
	r := run(t, "", "delete", "2", path)

	// Then: the file no longer holds it
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Deleted Alan Turing (id 2)")

	b, err := persist.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Empty(t, b.FindByName("Alan Turing"))
	assert.Len(t, b.FindByPhone("555-0100"), 2)

	// And: deleting it again is not an error
	r = run(t, "", "delete", "2", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No contact with ID 2.")
}

func TestDeleteCmd_JSONAndBadID(t *testing.T) {
	path := seedBook(t)

	r := run(t, "", "delete", "1", path, "--format", "json")
	require.NoError(t, r.err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &res))
	assert.Equal(t, true, res["deleted"])

	r = run(t, "", "delete", "one", path)
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(r.err))
}

func TestExportImportCmd(t *testing.T) {
	// Given: a seeded book exported to SQLite
	path := seedBook(t)
	db := filepath.Join(filepath.Dir(path), "contacts.db")

	r := run(t, "", "export", path, "--db", db)
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Exported 3 contacts")
	assert.FileExists(t, db)

	// When: importing into another book that already has Ada
	other := filepath.Join(filepath.Dir(path), "other.tsv")
	addContact(t, other, "Ada", "Lovelace", "London", "555-0100")

	r = run(t, "", "import", other, "--db", db, "--format", "json")
	require.NoError(t, r.err, r.stderr)

	// Then: Ada is skipped and the rest get fresh ids
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &res))
	assert.EqualValues(t, 2, res["added"])
	assert.EqualValues(t, 1, res["skipped"])

	b, err := persist.Load(other)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	grace := b.FindByName("Grace Hopper")
	require.Len(t, grace, 1)
	assert.Equal(t, contact.ID(3), grace[0].ID)
}

func TestExportCmd_RequiresDB(t *testing.T) {
	path := seedBook(t)

	r := run(t, "", "export", path)

	assert.Error(t, r.err)
}

func TestImportCmd_MissingDB(t *testing.T) {
	path := seedBook(t)

	r := run(t, "", "import", path, "--db", filepath.Join(t.TempDir(), "none.db"))

	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeExportFailed, errors.GetCode(r.err))
}

// Package export copies an address book into a SQLite database and back.
//
// The database is a snapshot: every export replaces the contacts table.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

// SchemaVersion is the version recorded in schema_version.
const SchemaVersion = 1

// ProgressFunc is called after each written row.
type ProgressFunc func(done, total int)

// DB is an open export database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database at path and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, exportError(path, "failed to open database", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// modernc.org/sqlite ignores most DSN params, so set pragmas directly.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, exportError(path, "failed to set pragma", err)
		}
	}

	d := &DB{db: db, path: path}
	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, exportError(path, "failed to initialize schema", err)
	}
	return d, nil
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id           INTEGER PRIMARY KEY,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		address      TEXT NOT NULL,
		phone_number TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(first_name, last_name);
	CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts(phone_number);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return err
	}
	_, err := d.db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, SchemaVersion)
	return err
}

// Write replaces the contacts table with contacts in one transaction.
// It returns the number of rows written.
func (d *DB) Write(ctx context.Context, contacts []contact.Contact, progress ProgressFunc) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, exportError(d.path, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return 0, exportError(d.path, "failed to clear contacts", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (id, first_name, last_name, address, phone_number) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, exportError(d.path, "failed to prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range contacts {
		if _, err := stmt.ExecContext(ctx, int64(c.ID), c.FirstName, c.LastName, c.Address, c.PhoneNumber); err != nil {
			return i, exportError(d.path, fmt.Sprintf("failed to insert contact %d", c.ID), err)
		}
		if progress != nil {
			progress(i+1, len(contacts))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, exportError(d.path, "failed to commit", err)
	}
	return len(contacts), nil
}

// ReadAll returns every stored contact ordered by id.
func (d *DB) ReadAll(ctx context.Context) ([]contact.Contact, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, address, phone_number FROM contacts ORDER BY id`)
	if err != nil {
		return nil, exportError(d.path, "failed to query contacts", err)
	}
	defer func() { _ = rows.Close() }()

	var out []contact.Contact
	for rows.Next() {
		var (
			id int64
			c  contact.Contact
		)
		if err := rows.Scan(&id, &c.FirstName, &c.LastName, &c.Address, &c.PhoneNumber); err != nil {
			return nil, exportError(d.path, "failed to scan contact", err)
		}
		c.ID = contact.ID(id)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, exportError(d.path, "failed to read contacts", err)
	}
	return out, nil
}

// Count returns the number of stored contacts.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, exportError(d.path, "failed to count contacts", err)
	}
	return n, nil
}

// Close checkpoints the WAL and closes the database.
func (d *DB) Close() error {
	_, _ = d.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return d.db.Close()
}

// Export writes contacts to a database at path, creating it if needed.
func Export(ctx context.Context, path string, contacts []contact.Contact, progress ProgressFunc) (int, error) {
	d, err := Open(path)
	if err != nil {
		return 0, err
	}
	n, err := d.Write(ctx, contacts, progress)
	if cerr := d.Close(); cerr != nil && err == nil {
		err = exportError(path, "failed to close database", cerr)
	}
	return n, err
}

// Import reads all contacts from the existing database at path.
func Import(ctx context.Context, path string) ([]contact.Contact, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, exportError(path, "cannot read database", err)
	}
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = d.Close() }()
	return d.ReadAll(ctx)
}

func exportError(path, msg string, cause error) error {
	return errors.New(errors.ErrCodeExportFailed, msg, cause).WithDetail("db", path)
}

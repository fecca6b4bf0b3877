// Package logging provides opt-in file-based logging with rotation for addrbook.
// With --debug, JSON logs are written to ~/.addrbook/logs/addrbook.log and can
// be read back with `addrbook logs`.
//
// Without --debug, only warnings and errors reach stderr as plain text.
package logging

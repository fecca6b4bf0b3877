// Package codec converts contacts to and from single tab-delimited lines.
//
// A line holds five fields in fixed order: id, first name, last name,
// address, phone number. There is no header and no escaping; fields must
// not contain tabs or newlines.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

// Delimiter separates fields within a record line.
const Delimiter = "\t"

// FieldCount is the number of fields in a record line.
const FieldCount = 5

// Encode renders c as a record line without a trailing newline.
func Encode(c contact.Contact) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(c.ID), 10),
		c.FirstName,
		c.LastName,
		c.Address,
		c.PhoneNumber,
	}, Delimiter)
}

// Decode parses a record line. A trailing line terminator is ignored.
// It fails with ERR_402_INVALID_FIELD_COUNT when the line does not split
// into exactly five fields, and ERR_403_INVALID_ID when the first field
// is not an integer in 0..contact.MaxID.
func Decode(line string) (contact.Contact, error) {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, Delimiter)
	if len(fields) != FieldCount {
		return contact.Contact{}, errors.New(errors.ErrCodeInvalidFieldCount,
			fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)), nil)
	}

	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return contact.Contact{}, errors.New(errors.ErrCodeInvalidID,
			fmt.Sprintf("invalid id %q", fields[0]), err)
	}
	if id > uint64(contact.MaxID) {
		return contact.Contact{}, errors.New(errors.ErrCodeInvalidID,
			fmt.Sprintf("id %s is larger than %d", fields[0], contact.MaxID), nil)
	}

	return contact.Contact{
		ID:          contact.ID(id),
		FirstName:   fields[1],
		LastName:    fields[2],
		Address:     fields[3],
		PhoneNumber: fields[4],
	}, nil
}

// Valid reports whether a field value can be encoded without corrupting
// the line structure.
func Valid(field string) bool {
	return !strings.ContainsAny(field, Delimiter+"\r\n")
}

// Check rejects a new contact whose id is outside 1..contact.MaxID or
// that has a field Valid refuses, naming the first offending field.
func Check(c contact.Contact) error {
	if c.ID == 0 || c.ID > contact.MaxID {
		return errors.New(errors.ErrCodeInvalidID,
			fmt.Sprintf("no ids left: %d is outside 1..%d", c.ID, contact.MaxID), nil).
			WithSuggestion("Renumber the book file so the largest id is below the limit")
	}
	fields := []struct{ name, value string }{
		{"first name", c.FirstName},
		{"last name", c.LastName},
		{"address", c.Address},
		{"phone number", c.PhoneNumber},
	}
	for _, f := range fields {
		if !Valid(f.value) {
			return errors.ValidationError(f.name+" must not contain tabs or line breaks", nil).
				WithDetail("field", f.name)
		}
	}
	return nil
}

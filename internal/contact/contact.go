// Package contact defines the address book record and its identifier allocation.
package contact

import (
	"fmt"
	"math"
)

// ID identifies a contact. Zero is never assigned.
type ID uint64

// MaxID is the largest id a book accepts. Ids stay within a signed 64-bit
// integer so they fit SQLite's INTEGER column.
const MaxID ID = math.MaxInt64

// Contact is one address book record.
// Values are treated as immutable once created; the book hands out copies.
type Contact struct {
	ID          ID     `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// New creates a contact whose id is lastAssignedID+1.
// Callers pass the book's current LastAssignedID. The result is not range
// checked; codec.Check rejects ids outside 1..MaxID.
func New(firstName, lastName, address, phoneNumber string, lastAssignedID ID) Contact {
	return Contact{
		ID:          lastAssignedID + 1,
		FirstName:   firstName,
		LastName:    lastName,
		Address:     address,
		PhoneNumber: phoneNumber,
	}
}

// FullName is the key used by the name index: "First Last".
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// String renders the contact on one line for shell output.
func (c Contact) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Address: %s, Phone: %s",
		c.ID, c.FullName(), c.Address, c.PhoneNumber)
}

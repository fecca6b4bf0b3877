package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_AssignsNextID(t *testing.T) {
	// Given: an empty book (last assigned id 0)
	// When: creating a contact
	c := New("Fernando", "Alonso", "8 Place de la Concorde, Paris", "987654321", 0)

	// Then: it gets id 1 and keeps every field
	assert.Equal(t, ID(1), c.ID)
	assert.Equal(t, "Fernando", c.FirstName)
	assert.Equal(t, "Alonso", c.LastName)
	assert.Equal(t, "8 Place de la Concorde, Paris", c.Address)
	assert.Equal(t, "987654321", c.PhoneNumber)
}

func TestNew_FollowsLastAssignedID(t *testing.T) {
	c := New("Lewis", "Hamilton", "Brackley, UK", "1234567890", 41)

	assert.Equal(t, ID(42), c.ID)
}

func TestFullName(t *testing.T) {
	c := New("Max", "Verstappen", "Milton Keynes, UK", "1234567800", 0)

	assert.Equal(t, "Max Verstappen", c.FullName())
}

func TestString(t *testing.T) {
	c := New("Ada", "Lovelace", "London", "555-0100", 0)

	assert.Equal(t, "ID: 1, Name: Ada Lovelace, Address: London, Phone: 555-0100", c.String())
}

func TestEquality_IsFullField(t *testing.T) {
	a := New("Ada", "Lovelace", "London", "555-0100", 0)
	b := a
	b.Address = "Marylebone"

	assert.Equal(t, a, New("Ada", "Lovelace", "London", "555-0100", 0))
	assert.NotEqual(t, a, b)
}

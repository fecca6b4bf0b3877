package book

import (
	"maps"
	"slices"

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
)

// Book is the indexed contact store.
type Book struct {
	contacts       map[contact.ID]contact.Contact
	byName         index
	byPhone        index
	lastAssignedID contact.ID
}

// New returns an empty book.
func New() *Book {
	return &Book{
		contacts: make(map[contact.ID]contact.Contact),
		byName:   make(index),
		byPhone:  make(index),
	}
}

// Add stores c under c.ID and indexes it by full name and phone number,
// then records c.ID as the last assigned id.
//
// No duplicate detection is performed. Re-adding an id overwrites the stored
// contact; if its name or phone changed, the id moves to the new buckets,
// otherwise the bucket gains a second entry for the same id.
func (b *Book) Add(c contact.Contact) {
	if prev, ok := b.contacts[c.ID]; ok {
		if prev.FullName() != c.FullName() {
			b.byName.remove(prev.FullName(), c.ID)
		}
		if prev.PhoneNumber != c.PhoneNumber {
			b.byPhone.remove(prev.PhoneNumber, c.ID)
		}
	}

	b.contacts[c.ID] = c
	b.byName.add(c.FullName(), c.ID)
	b.byPhone.add(c.PhoneNumber, c.ID)

	if c.ID > b.lastAssignedID {
		b.lastAssignedID = c.ID
	}
}

// DuplicateFunc reports whether c duplicates a contact already in b,
// returning the existing contact when it does.
type DuplicateFunc func(b *Book, c contact.Contact) (contact.Contact, bool)

// SameID treats a contact as duplicate when its id is already stored.
func SameID(b *Book, c contact.Contact) (contact.Contact, bool) {
	return b.Get(c.ID)
}

// SameNameAndPhone treats a contact as duplicate when another contact has
// the same full name and phone number.
func SameNameAndPhone(b *Book, c contact.Contact) (contact.Contact, bool) {
	for _, existing := range b.FindByPhone(c.PhoneNumber) {
		if existing.FullName() == c.FullName() {
			return existing, true
		}
	}
	return contact.Contact{}, false
}

// AddUnique adds c unless any of checks reports a duplicate, in which case
// the book is left untouched and ERR_404_DUPLICATE_CONTACT is returned.
func (b *Book) AddUnique(c contact.Contact, checks ...DuplicateFunc) error {
	for _, check := range checks {
		if existing, dup := check(b, c); dup {
			return errors.New(errors.ErrCodeDuplicateContact,
				"contact already exists: "+existing.String(), nil)
		}
	}
	b.Add(c)
	return nil
}

// NewContact builds a contact carrying the next free id.
// The contact is not stored until passed to Add.
func (b *Book) NewContact(firstName, lastName, address, phoneNumber string) contact.Contact {
	return contact.New(firstName, lastName, address, phoneNumber, b.lastAssignedID)
}

// Get returns the contact stored under id.
func (b *Book) Get(id contact.ID) (contact.Contact, bool) {
	c, ok := b.contacts[id]
	return c, ok
}

// FindByName returns the contacts whose full name equals name, in insertion
// order. The result is empty, never nil, when nothing matches.
func (b *Book) FindByName(name string) []contact.Contact {
	return b.resolve(b.byName.bucket(name), func(c contact.Contact) bool {
		return c.FullName() == name
	})
}

// FindByPhone returns the contacts with the given phone number, in insertion
// order. The result is empty, never nil, when nothing matches.
func (b *Book) FindByPhone(phone string) []contact.Contact {
	return b.resolve(b.byPhone.bucket(phone), func(c contact.Contact) bool {
		return c.PhoneNumber == phone
	})
}

// resolve maps bucket ids through the primary map.
func (b *Book) resolve(ids []contact.ID, match func(contact.Contact) bool) []contact.Contact {
	out := make([]contact.Contact, 0, len(ids))
	for _, id := range ids {
		if c, ok := b.contacts[id]; ok && match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Delete removes the contact stored under id from the primary map and both
// indexes. Deleting an absent id is a no-op that returns false.
// Deleted ids are never handed out again.
func (b *Book) Delete(id contact.ID) (contact.Contact, bool) {
	c, ok := b.contacts[id]
	if !ok {
		return contact.Contact{}, false
	}
	delete(b.contacts, id)
	b.byName.remove(c.FullName(), id)
	b.byPhone.remove(c.PhoneNumber, id)
	return c, true
}

// List returns every stored contact ordered by id.
func (b *Book) List() []contact.Contact {
	ids := slices.Sorted(maps.Keys(b.contacts))
	out := make([]contact.Contact, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.contacts[id])
	}
	return out
}

// Len returns the number of stored contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// LastAssignedID returns the highest id issued so far, or 0 for a book that
// has never held a contact.
func (b *Book) LastAssignedID() contact.ID {
	return b.lastAssignedID
}

// NextID returns the id the next NewContact call will assign.
func (b *Book) NextID() contact.ID {
	return b.lastAssignedID + 1
}

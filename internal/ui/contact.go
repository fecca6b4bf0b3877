package ui

import (
	"strconv"
	"strings"

	"github.com/Aman-CERP/addrbook/internal/contact"
)

// FormatContact renders c on one line.
// With NoColorStyles the result equals c.String().
func FormatContact(s Styles, c contact.Contact) string {
	var b strings.Builder
	b.WriteString(s.Label.Render("ID:"))
	b.WriteByte(' ')
	b.WriteString(s.ID.Render(strconv.FormatUint(uint64(c.ID), 10)))
	b.WriteString(", ")
	b.WriteString(s.Label.Render("Name:"))
	b.WriteByte(' ')
	b.WriteString(s.Name.Render(c.FullName()))
	b.WriteString(", ")
	b.WriteString(s.Label.Render("Address:"))
	b.WriteByte(' ')
	b.WriteString(s.Value.Render(c.Address))
	b.WriteString(", ")
	b.WriteString(s.Label.Render("Phone:"))
	b.WriteByte(' ')
	b.WriteString(s.Value.Render(c.PhoneNumber))
	return b.String()
}

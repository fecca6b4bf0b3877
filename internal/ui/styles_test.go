package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/addrbook/internal/contact"
)

func TestNoColorStyles_RenderPlainText(t *testing.T) {
	// Given: no-color styles
	s := NoColorStyles()

	// Then: rendering leaves text untouched
	assert.Equal(t, "Ada Lovelace", s.Name.Render("Ada Lovelace"))
	assert.Equal(t, "", s.Value.Render(""))
	assert.Equal(t, "warn", s.Warning.Render("warn"))
}

func TestDefaultStyles_HeaderAndNamesAreBold(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Header.GetBold())
	assert.True(t, s.Name.GetBold())
	assert.True(t, s.ID.GetBold())
	assert.False(t, s.Label.GetBold())
}

func TestGetStyles(t *testing.T) {
	assert.False(t, GetStyles(true).Header.GetBold())
	assert.True(t, GetStyles(false).Header.GetBold())
}

func TestFormatContact_PlainMatchesString(t *testing.T) {
	// Given: a contact
	c := contact.New("Ada", "Lovelace", "12 St James's Square, London", "555-0100", 0)

	// When: formatting without color
	got := FormatContact(NoColorStyles(), c)

	// Then: it is the canonical one-line form
	assert.Equal(t, c.String(), got)
	assert.Equal(t, "ID: 1, Name: Ada Lovelace, Address: 12 St James's Square, London, Phone: 555-0100", got)
}

func TestFormatContact_StyledKeepsContent(t *testing.T) {
	c := contact.New("Alan", "Turing", "Wilmslow", "555-0199", 6)

	got := FormatContact(DefaultStyles(), c)

	assert.Contains(t, got, "Alan Turing")
	assert.Contains(t, got, "Wilmslow")
	assert.Contains(t, got, "555-0199")
	assert.Contains(t, got, "7")
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContactFields(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		phone   string
		email   string
		website string
	}{
		{
			name:    "all fields present",
			text:    "John Doe CEO Acme Corp john@acme.com +1 555-123-4567 www.acme.com",
			phone:   "+1 555-123-4567",
			email:   "john@acme.com",
			website: "www.acme.com",
		},
		{
			name:    "empty text",
			text:    "",
			phone:   NotFound,
			email:   NotFound,
			website: NotFound,
		},
		{
			name:    "no matches in prose",
			text:    "hello there general greeting",
			phone:   NotFound,
			email:   NotFound,
			website: NotFound,
		},
		{
			name:    "https website",
			text:    "visit https://example.org/contact for details",
			phone:   NotFound,
			email:   NotFound,
			website: "https://example.org/contact",
		},
		{
			name:    "phone without plus",
			text:    "call 0123 456 7890 today",
			phone:   "0123 456 7890",
			email:   NotFound,
			website: NotFound,
		},
		{
			name:    "first match wins",
			text:    "a@b.com second@other.com",
			phone:   NotFound,
			email:   "a@b.com",
			website: NotFound,
		},
		{
			name:    "malformed email still matches",
			text:    "reach us at foo@bar without a tld",
			phone:   NotFound,
			email:   "foo@bar",
			website: NotFound,
		},
		{
			name:    "short digit run is not a phone",
			text:    "suite 12345 floor 3",
			phone:   NotFound,
			email:   NotFound,
			website: NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractContactFields(tt.text)
			assert.Equal(t, tt.phone, got.Phone)
			assert.Equal(t, tt.email, got.Email)
			assert.Equal(t, tt.website, got.Website)
		})
	}
}

func TestExtractContactFieldsNeverEmpty(t *testing.T) {
	// Absence of a match must always yield the literal sentinel, never "".
	got := ExtractContactFields("no contact data here")
	assert.NotEmpty(t, got.Phone)
	assert.NotEmpty(t, got.Email)
	assert.NotEmpty(t, got.Website)
}

package state

import (
	"testing"

	"github.com/cardscanbot/cardscan/internal/extract"
	"github.com/stretchr/testify/assert"
)

func record(name string) extract.ContactRecord {
	return extract.ContactRecord{
		Name:        name,
		Designation: extract.NotFound,
		Company:     extract.NotFound,
		Phone:       extract.NotFound,
		Email:       extract.NotFound,
		Website:     extract.NotFound,
		Address:     extract.NotFound,
		Industry:    extract.NotFound,
		Services:    extract.NotFound,
	}
}

func TestPutThenGet(t *testing.T) {
	s := NewStore()
	rec := record("John Doe")

	s.Put(42, rec)

	got, ok := s.Get(42)
	assert.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestGetUnknownChat(t *testing.T) {
	s := NewStore()

	_, ok := s.Get(99)
	assert.False(t, ok)
}

func TestPutOverwritesEntirely(t *testing.T) {
	s := NewStore()
	first := record("First")
	first.Company = "Acme Corp"

	s.Put(7, first)
	s.Put(7, record("Second"))

	got, ok := s.Get(7)
	assert.True(t, ok)
	assert.Equal(t, "Second", got.Name)
	// No field merging across records: the old company is gone.
	assert.Equal(t, extract.NotFound, got.Company)
	assert.Equal(t, 1, s.Len())
}

func TestDistinctChatsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Put(1, record("A"))
	s.Put(2, record("B"))

	a, _ := s.Get(1)
	b, _ := s.Get(2)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, 2, s.Len())
}

// store.go - Per-chat conversation state: the last merged record per chat.

package state

import (
	"sync"

	"github.com/cardscanbot/cardscan/internal/extract"
)

// Store maps a Telegram chat id to the most recent ContactRecord captured in
// that chat. Entries are overwritten wholesale on each new card and never
// expire, so the map grows with the number of distinct chats seen (one entry
// per chat, not per message).
//
// The RWMutex only protects the map structure itself. There is deliberately
// no per-key coordination: a text event racing a photo event in the same chat
// may observe the previous record or none at all, which is accepted.
type Store struct {
	mu      sync.RWMutex
	records map[int64]extract.ContactRecord
}

// NewStore creates an empty conversation state store. Callers own the store
// and pass it into the handlers; there is no package-level instance.
func NewStore() *Store {
	return &Store{records: make(map[int64]extract.ContactRecord)}
}

// Put stores the record for chatID, replacing any prior record entirely.
func (s *Store) Put(chatID int64, rec extract.ContactRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[chatID] = rec
}

// Get returns the last record stored for chatID, if any.
func (s *Store) Get(chatID int64) (extract.ContactRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[chatID]
	return rec, ok
}

// Len reports how many chats currently have a stored record.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

package book

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/addrbook/internal/contact"
)

// DefaultRecentSize is the number of recently viewed contacts remembered.
const DefaultRecentSize = 10

// Recent remembers the ids of recently viewed contacts, least recently
// viewed evicted first.
type Recent struct {
	cache *lru.Cache[contact.ID, struct{}]
}

// NewRecent creates a Recent holding up to size ids.
func NewRecent(size int) (*Recent, error) {
	if size <= 0 {
		size = DefaultRecentSize
	}
	cache, err := lru.New[contact.ID, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("create recent cache: %w", err)
	}
	return &Recent{cache: cache}, nil
}

// Touch marks contacts as viewed, in order.
func (r *Recent) Touch(contacts ...contact.Contact) {
	for _, c := range contacts {
		r.cache.Add(c.ID, struct{}{})
	}
}

// Forget drops id, e.g. after it was deleted.
func (r *Recent) Forget(id contact.ID) {
	r.cache.Remove(id)
}

// Contacts resolves the remembered ids against b, most recent first.
// Ids no longer in b are skipped.
func (r *Recent) Contacts(b *Book) []contact.Contact {
	keys := r.cache.Keys() // oldest first
	out := make([]contact.Contact, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if c, ok := b.Get(keys[i]); ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of remembered ids.
func (r *Recent) Len() int {
	return r.cache.Len()
}

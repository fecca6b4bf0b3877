package book

import (
	"slices"

	"github.com/Aman-CERP/addrbook/internal/contact"
)

// index maps a key (full name or phone number) to a bucket of ids.
type index map[string][]contact.ID

func (ix index) add(key string, id contact.ID) {
	ix[key] = append(ix[key], id)
}

// remove drops every occurrence of id from the bucket for key.
// Empty buckets are pruned.
func (ix index) remove(key string, id contact.ID) {
	bucket, ok := ix[key]
	if !ok {
		return
	}
	bucket = slices.DeleteFunc(bucket, func(v contact.ID) bool { return v == id })
	if len(bucket) == 0 {
		delete(ix, key)
		return
	}
	ix[key] = bucket
}

func (ix index) bucket(key string) []contact.ID {
	return ix[key]
}

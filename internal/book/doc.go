// Package book implements the in-memory address book: every contact keyed by
// id, plus secondary indexes by full name and by phone number.
//
// # Invariants
//
//   - Every id held by the name or phone index exists in the primary map.
//   - Every stored contact is reachable from the name index under its full
//     name and from the phone index under its phone number.
//   - LastAssignedID never decreases and is never below the largest stored id.
//
// Names and phone numbers are not unique: a bucket may hold many ids, kept in
// insertion order. Add performs no duplicate detection; AddUnique is the
// explicit opt-in for callers that want it.
//
// A Book is not safe for concurrent use.
package book

// Package models defines the wire and domain types shared by the API client,
// the derivation layer and the UI.
//
// # Item Variants
//
// [LibraryItem] is a tagged union discriminated by [ItemType]. Books and
// reference books carry author and page count; DVDs and audiobooks carry a
// runtime. The zero values of foreign variant fields are part of the
// invariant: switching the discriminant through [LibraryItem.SetType] clears
// fields the new variant doesn't own, and [LibraryItem.Validate] rejects
// records where more than one variant is populated.
//
// # Dates
//
// [Date] fixes the borrowDate wire form: RFC 3339 on write, explicit null
// when absent. The server echoes whatever textual form it stored, so
// unmarshalling accepts any RFC 3339 timestamp and comparisons go through
// [Date.Equal] rather than string equality.
package models

// package models defines the data model for the catalog client
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Category represents a catalog category. Items reference categories by ID;
// the server does not enforce referential integrity, so an item may carry a
// categoryId with no matching category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the identity decoded from a session token.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// UserLogin carries login credentials.
type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRegister carries registration data.
type UserRegister struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ItemType discriminates the four library item variants.
type ItemType string

const (
	TypeBook          ItemType = "book"
	TypeReferenceBook ItemType = "referencebook"
	TypeDVD           ItemType = "dvd"
	TypeAudiobook     ItemType = "audiobook"
)

// ItemTypes lists all valid variants in form display order.
var ItemTypes = []ItemType{TypeBook, TypeDVD, TypeAudiobook, TypeReferenceBook}

// Valid reports whether t is one of the four known variants.
func (t ItemType) Valid() bool {
	switch t {
	case TypeBook, TypeReferenceBook, TypeDVD, TypeAudiobook:
		return true
	}
	return false
}

// HasAuthor reports whether the variant carries author/nbrPages fields.
func (t ItemType) HasAuthor() bool {
	return t == TypeBook || t == TypeReferenceBook
}

// HasRunTime reports whether the variant carries a runTimeMinutes field.
func (t ItemType) HasRunTime() bool {
	return t == TypeDVD || t == TypeAudiobook
}

// Lendable reports whether the variant can be checked out at all.
// Reference books stay in the library regardless of the borrowable flag.
func (t ItemType) Lendable() bool {
	return t == TypeBook || t == TypeDVD || t == TypeAudiobook
}

// Label returns the human-readable variant name.
func (t ItemType) Label() string {
	switch t {
	case TypeBook:
		return "Book"
	case TypeReferenceBook:
		return "Reference Book"
	case TypeDVD:
		return "DVD"
	case TypeAudiobook:
		return "Audiobook"
	}
	return string(t)
}

// Date wraps [time.Time] with the wire format the catalog server expects:
// RFC 3339 strings on write, with absent dates serialized as an explicit
// null (a *Date field without omitempty).
type Date struct {
	time.Time
}

// NewDate returns a Date pointer for t, for use in borrowDate fields.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format(time.RFC3339Nano) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Equal reports whether both dates refer to the same instant, ignoring
// serialization form and location.
func (d *Date) Equal(other *Date) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Time.Equal(other.Time)
}

// LibraryItem is the tagged union of the four item variants, discriminated by
// Type. Exactly one variant's fields may be populated: author/nbrPages for
// book and referencebook, runTimeMinutes for dvd and audiobook. Constructors
// and [LibraryItem.Validate] enforce this; SetType zeroes foreign fields when
// the discriminant changes.
type LibraryItem struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Type         ItemType `json:"type"`
	Abbreviation string   `json:"abbreviation"`
	IsBorrowable bool     `json:"isBorrowable"`
	CategoryID   string   `json:"categoryId"`
	Borrower     string   `json:"borrower,omitempty"`
	BorrowDate   *Date    `json:"borrowDate"`

	// book / referencebook
	Author   string `json:"author,omitempty"`
	NbrPages int    `json:"nbrPages,omitempty"`

	// dvd / audiobook
	RunTimeMinutes int `json:"runTimeMinutes,omitempty"`
}

// NewBook constructs a book item.
func NewBook(title, categoryID, author string, nbrPages int) LibraryItem {
	return LibraryItem{
		Title:      title,
		Type:       TypeBook,
		CategoryID: categoryID,
		Author:     author,
		NbrPages:   nbrPages,
	}
}

// NewReferenceBook constructs a reference book item.
func NewReferenceBook(title, categoryID, author string, nbrPages int) LibraryItem {
	item := NewBook(title, categoryID, author, nbrPages)
	item.Type = TypeReferenceBook
	return item
}

// NewDVD constructs a DVD item.
func NewDVD(title, categoryID string, runTimeMinutes int) LibraryItem {
	return LibraryItem{
		Title:          title,
		Type:           TypeDVD,
		CategoryID:     categoryID,
		RunTimeMinutes: runTimeMinutes,
	}
}

// NewAudiobook constructs an audiobook item.
func NewAudiobook(title, categoryID string, runTimeMinutes int) LibraryItem {
	item := NewDVD(title, categoryID, runTimeMinutes)
	item.Type = TypeAudiobook
	return item
}

// SetType switches the variant discriminant, zeroing fields that don't belong
// to the new variant so a book can't retain a stale runtime from a prior
// selection.
func (i *LibraryItem) SetType(t ItemType) {
	i.Type = t
	if !t.HasAuthor() {
		i.Author = ""
		i.NbrPages = 0
	}
	if !t.HasRunTime() {
		i.RunTimeMinutes = 0
	}
}

// Borrowed reports whether the item is currently checked out.
func (i LibraryItem) Borrowed() bool {
	return i.Borrower != ""
}

// Validate checks presence of required fields and the exactly-one-variant
// invariant.
func (i LibraryItem) Validate() error {
	if !i.Type.Valid() {
		return fmt.Errorf("unknown item type %q", i.Type)
	}
	if i.Title == "" {
		return fmt.Errorf("title is required")
	}
	if i.CategoryID == "" {
		return fmt.Errorf("category ID is required")
	}
	if i.Type.HasAuthor() && i.Author == "" {
		return fmt.Errorf("author is required for %s items", i.Type)
	}
	if !i.Type.HasAuthor() && (i.Author != "" || i.NbrPages != 0) {
		return fmt.Errorf("%s items cannot carry author fields", i.Type)
	}
	if !i.Type.HasRunTime() && i.RunTimeMinutes != 0 {
		return fmt.Errorf("%s items cannot carry a runtime", i.Type)
	}
	if (i.Borrower == "") != (i.BorrowDate == nil) {
		return fmt.Errorf("borrower and borrow date must be set together")
	}
	return nil
}

// Abbreviate derives the display abbreviation for a title: the uppercased
// first rune of every whitespace-separated word. Recomputed on every fetch;
// never persisted unless the user edits it in the form.
func Abbreviate(title string) string {
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

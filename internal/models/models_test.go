package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAbbreviate(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Dune Messiah", "DM"},
		{"the hobbit", "TH"},
		{"Sagan om ringen", "SOR"},
		{"Solo", "S"},
		{"", ""},
		{"  spaced   out  ", "SO"},
	}

	for _, c := range cases {
		if got := Abbreviate(c.title); got != c.want {
			t.Errorf("Abbreviate(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestItemType(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, typ := range ItemTypes {
			if !typ.Valid() {
				t.Errorf("expected %q to be valid", typ)
			}
		}
		if ItemType("vinyl").Valid() {
			t.Error("expected unknown type to be invalid")
		}
	})

	t.Run("Variant Fields", func(t *testing.T) {
		if !TypeBook.HasAuthor() || !TypeReferenceBook.HasAuthor() {
			t.Error("book variants should carry author fields")
		}
		if TypeDVD.HasAuthor() || TypeAudiobook.HasAuthor() {
			t.Error("media variants should not carry author fields")
		}
		if !TypeDVD.HasRunTime() || !TypeAudiobook.HasRunTime() {
			t.Error("media variants should carry a runtime")
		}
	})

	t.Run("Lendable", func(t *testing.T) {
		if TypeReferenceBook.Lendable() {
			t.Error("reference books should never be lendable")
		}
		for _, typ := range []ItemType{TypeBook, TypeDVD, TypeAudiobook} {
			if !typ.Lendable() {
				t.Errorf("expected %q to be lendable", typ)
			}
		}
	})
}

func TestLibraryItemSetType(t *testing.T) {
	item := NewBook("Dune", "1", "Frank Herbert", 412)

	item.SetType(TypeAudiobook)
	if item.Author != "" || item.NbrPages != 0 {
		t.Errorf("expected author fields cleared, got author=%q pages=%d", item.Author, item.NbrPages)
	}

	item.RunTimeMinutes = 620
	item.SetType(TypeReferenceBook)
	if item.RunTimeMinutes != 0 {
		t.Errorf("expected runtime cleared, got %d", item.RunTimeMinutes)
	}
}

func TestLibraryItemValidate(t *testing.T) {
	t.Run("Valid Book", func(t *testing.T) {
		item := NewBook("Dune", "1", "Frank Herbert", 412)
		if err := item.Validate(); err != nil {
			t.Errorf("expected valid item, got %v", err)
		}
	})

	t.Run("Missing Category", func(t *testing.T) {
		item := NewDVD("Alien", "", 117)
		if err := item.Validate(); err == nil {
			t.Error("expected error for missing category")
		}
	})

	t.Run("Missing Author", func(t *testing.T) {
		item := NewBook("Dune", "1", "", 412)
		if err := item.Validate(); err == nil {
			t.Error("expected error for missing author")
		}
	})

	t.Run("Foreign Variant Fields", func(t *testing.T) {
		item := NewBook("Dune", "1", "Frank Herbert", 412)
		item.RunTimeMinutes = 620
		if err := item.Validate(); err == nil {
			t.Error("expected error for book carrying a runtime")
		}

		item = NewAudiobook("Dune", "1", 620)
		item.Author = "Frank Herbert"
		if err := item.Validate(); err == nil {
			t.Error("expected error for audiobook carrying an author")
		}
	})

	t.Run("Borrower Without Date", func(t *testing.T) {
		item := NewBook("Dune", "1", "Frank Herbert", 412)
		item.Borrower = "leila"
		if err := item.Validate(); err == nil {
			t.Error("expected error for borrower without borrow date")
		}

		item.BorrowDate = NewDate(time.Now())
		if err := item.Validate(); err != nil {
			t.Errorf("expected valid borrowed item, got %v", err)
		}
	})
}

func TestDateWireFormat(t *testing.T) {
	t.Run("Round Trip Preserves Instant", func(t *testing.T) {
		loc := time.FixedZone("CET", 3600)
		item := NewBook("Dune", "1", "Frank Herbert", 412)
		item.Borrower = "leila"
		item.BorrowDate = NewDate(time.Date(2024, 3, 9, 14, 30, 0, 0, loc))

		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var decoded LibraryItem
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if !decoded.BorrowDate.Equal(item.BorrowDate) {
			t.Errorf("expected equal instants, got %v and %v", decoded.BorrowDate, item.BorrowDate)
		}
	})

	t.Run("Absent Date Serializes To Null", func(t *testing.T) {
		item := NewDVD("Alien", "2", 117)
		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		borrowDate, ok := raw["borrowDate"]
		if !ok {
			t.Fatal("expected borrowDate key to be present")
		}
		if string(borrowDate) != "null" {
			t.Errorf("expected explicit null, got %s", borrowDate)
		}
	})

	t.Run("Null Parses To Nil", func(t *testing.T) {
		var decoded LibraryItem
		payload := `{"id":"a","title":"Alien","type":"dvd","abbreviation":"A","isBorrowable":true,"categoryId":"2","borrowDate":null,"runTimeMinutes":117}`
		if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if decoded.BorrowDate != nil {
			t.Errorf("expected nil borrow date, got %v", decoded.BorrowDate)
		}
	})

	t.Run("Invalid Date Rejected", func(t *testing.T) {
		var d Date
		if err := d.UnmarshalJSON([]byte(`"yesterday"`)); err == nil {
			t.Error("expected error for unparseable date")
		}
	})
}

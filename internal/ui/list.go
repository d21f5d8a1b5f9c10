package ui

import (
	"errors"
	"fmt"

	"github.com/leilabk/shelfctl/internal/api"
	"github.com/leilabk/shelfctl/internal/catalog"
	"github.com/leilabk/shelfctl/internal/models"
)

// entryItem adapts a catalog entry to the bubbles list.
type entryItem struct {
	entry catalog.Entry
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.entry.Title, i.entry.Abbreviation)
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.entry.Type.Label(), i.entry.CategoryName, statusLine(i.entry.LibraryItem))
}

func (i entryItem) FilterValue() string {
	return i.entry.Title
}

// categoryItem adapts a category to the bubbles list.
type categoryItem struct {
	category models.Category
}

func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string { return "id: " + i.category.ID }
func (i categoryItem) FilterValue() string { return i.category.Name }

// statusLine describes the lending state of an item. A borrower can arrive
// from the server without a borrow date; render a placeholder for the date.
func statusLine(item models.LibraryItem) string {
	if item.Borrowed() {
		when := "-"
		if item.BorrowDate != nil {
			when = item.BorrowDate.Format("2006-01-02")
		}
		return fmt.Sprintf("Borrowed by %s on %s", item.Borrower, when)
	}
	if !item.IsBorrowable {
		return "Not borrowable"
	}
	return "Available"
}

// userMessage surfaces local validation text and server 400 bodies verbatim,
// falling back to a generic message for anything else.
func userMessage(err error, fallback string) string {
	var verr catalog.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return api.UserMessage(err, fallback)
}

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/leilabk/shelfctl/internal/models"
)

// ValidationError is a local, pre-network failure: the action is blocked and
// no request is made.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrCategoryRequired = ValidationError("Category ID is required.")
	ErrBorrowerRequired = ValidationError("Borrower's name is required.")
	ErrNotBorrowable    = ValidationError("Item is not borrowable or invalid item type")
)

// Form is the polymorphic edit form's state: a working copy of one item plus
// the borrower-name input. The form is in the "new" state while the item has
// no id and "editing" once it does; the visible variant fields follow the
// item's type discriminant.
//
// The borrower-name input is for entering the next borrower on checkout. It
// is seeded with the current borrower when editing, and cleared after a
// successful checkout or return, decoupled from the item's stored borrower.
type Form struct {
	Item         models.LibraryItem
	BorrowerName string
}

// NewForm returns a form for creating an item, defaulting to the book variant.
func NewForm() *Form {
	return &Form{Item: models.LibraryItem{Type: models.TypeBook}}
}

// EditForm returns a form editing an existing item.
func EditForm(item models.LibraryItem) *Form {
	return &Form{Item: item, BorrowerName: item.Borrower}
}

// Editing reports whether the form holds a persisted item.
func (f *Form) Editing() bool {
	return f.Item.ID != ""
}

// SetType switches the variant, zeroing fields the new variant doesn't own.
func (f *Form) SetType(t models.ItemType) {
	f.Item.SetType(t)
}

// Submit validates and persists the item, creating or updating by id.
// An empty category aborts before any network call.
func (f *Form) Submit(ctx context.Context, items ItemWriter) error {
	if f.Item.CategoryID == "" {
		return ErrCategoryRequired
	}

	saved, err := items.Save(ctx, f.Item)
	if err != nil {
		return err
	}

	f.Item = *saved
	return nil
}

// Checkout lends the item to the name in the borrower input, stamping the
// borrow date with now. Both guards run before any network call.
func (f *Form) Checkout(ctx context.Context, items ItemWriter, now func() time.Time) error {
	if f.BorrowerName == "" {
		return ErrBorrowerRequired
	}
	if !f.Item.IsBorrowable || !f.Item.Type.Lendable() {
		return ErrNotBorrowable
	}

	updated := f.Item
	updated.Borrower = f.BorrowerName
	updated.BorrowDate = models.NewDate(now())

	if _, err := items.Update(ctx, updated); err != nil {
		return err
	}

	f.Item = updated
	f.BorrowerName = ""
	return nil
}

// Return clears the borrower and borrow date and persists. It is allowed
// regardless of the current borrowed state; returning an available item is a
// no-op by construction.
func (f *Form) Return(ctx context.Context, items ItemWriter) error {
	updated := f.Item
	updated.Borrower = ""
	updated.BorrowDate = nil

	if _, err := items.Update(ctx, updated); err != nil {
		return err
	}

	f.Item = updated
	f.BorrowerName = ""
	return nil
}

// Delete removes the persisted item. Only meaningful in the editing state.
func (f *Form) Delete(ctx context.Context, items ItemWriter) error {
	if f.Item.ID == "" {
		return fmt.Errorf("cannot delete an unsaved item")
	}
	return items.Delete(ctx, f.Item.ID)
}

// Package catalog holds the client-side state logic of the browse and edit
// screens: category-name joins, filtering, stable sorts, the "All Categories"
// pseudo-category, and the polymorphic edit form's state machine.
//
// Everything here is a pure derivation over immutable inputs or an explicit
// state transition on a [Form]; nothing caches across fetches, so displayed
// values can't diverge from stored ones. Network access goes through the
// narrow [CategorySource], [ItemSource] and [ItemWriter] interfaces, which
// [api.CategoryService] and [api.ItemService] satisfy and tests fake.
package catalog

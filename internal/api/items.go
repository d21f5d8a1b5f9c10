package api

import (
	"context"
	"net/http"

	"github.com/leilabk/shelfctl/internal/models"
)

const itemsPath = "/api/library-items"

// ItemService provides CRUD operations over /api/library-items.
type ItemService struct {
	client *Client
}

// NewItemService creates an ItemService over the given client.
func NewItemService(client *Client) *ItemService {
	return &ItemService{client: client}
}

func itemURL(id string) string {
	if id == "" {
		return itemsPath
	}
	return itemsPath + "/" + id
}

// List retrieves all library items.
func (s *ItemService) List(ctx context.Context) ([]models.LibraryItem, error) {
	var items []models.LibraryItem
	if err := s.client.doJSON(ctx, http.MethodGet, itemURL(""), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get retrieves a single item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (*models.LibraryItem, error) {
	var item models.LibraryItem
	if err := s.client.doJSON(ctx, http.MethodGet, itemURL(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a new item.
func (s *ItemService) Create(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error) {
	var created models.LibraryItem
	if err := s.client.doJSON(ctx, http.MethodPost, itemURL(""), item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update persists changes to an existing item.
func (s *ItemService) Update(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error) {
	var updated models.LibraryItem
	if err := s.client.doJSON(ctx, http.MethodPut, itemURL(item.ID), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Save creates when the item has no ID and updates otherwise.
func (s *ItemService) Save(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error) {
	if item.ID == "" {
		return s.Create(ctx, item)
	}
	return s.Update(ctx, item)
}

// Delete removes an item by ID.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, http.MethodDelete, itemURL(id), nil, nil)
}

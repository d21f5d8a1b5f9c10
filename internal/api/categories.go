package api

import (
	"context"
	"net/http"

	"github.com/leilabk/shelfctl/internal/models"
)

const categoriesPath = "/api/categories"

// CategoryService provides CRUD operations over /api/categories.
type CategoryService struct {
	client *Client
}

// NewCategoryService creates a CategoryService over the given client.
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

func categoryURL(id string) string {
	if id == "" {
		return categoriesPath
	}
	return categoriesPath + "/" + id
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.client.doJSON(ctx, http.MethodGet, categoryURL(""), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get retrieves a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.client.doJSON(ctx, http.MethodGet, categoryURL(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create creates a new category from its name.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	var created models.Category
	payload := map[string]string{"name": name}
	if err := s.client.doJSON(ctx, http.MethodPost, categoryURL(""), payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update renames an existing category.
func (s *CategoryService) Update(ctx context.Context, category models.Category) (*models.Category, error) {
	var updated models.Category
	if err := s.client.doJSON(ctx, http.MethodPut, categoryURL(category.ID), category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Save creates when the category has no ID and updates otherwise.
func (s *CategoryService) Save(ctx context.Context, category models.Category) (*models.Category, error) {
	if category.ID == "" {
		return s.Create(ctx, category.Name)
	}
	return s.Update(ctx, category)
}

// Delete removes a category by ID. Items referencing it keep their categoryId
// and degrade to an "Unknown" display name.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, http.MethodDelete, categoryURL(id), nil, nil)
}

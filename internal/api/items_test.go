package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leilabk/shelfctl/internal/models"
)

func TestItemService(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/api/library-items" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"id":"a","title":"Dune","type":"book","abbreviation":"D","isBorrowable":true,"categoryId":"1","borrowDate":null,"author":"Frank Herbert","nbrPages":412},
				{"id":"b","title":"Alien","type":"dvd","abbreviation":"A","isBorrowable":true,"categoryId":"2","borrower":"leila","borrowDate":"2024-03-09T14:30:00Z","runTimeMinutes":117}
			]`))
		}))
		defer server.Close()

		items, err := NewItemService(newTestClient(server.URL, "")).List(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Type != models.TypeBook || items[0].Author != "Frank Herbert" {
			t.Errorf("unexpected first item %+v", items[0])
		}
		if items[1].BorrowDate == nil {
			t.Fatal("expected borrow date to be parsed")
		}
		want := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
		if !items[1].BorrowDate.Time.Equal(want) {
			t.Errorf("expected %v, got %v", want, items[1].BorrowDate.Time)
		}
	})

	t.Run("Get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/library-items/a" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"id":"a","title":"Dune","type":"book","abbreviation":"D","isBorrowable":true,"categoryId":"1","borrowDate":null,"author":"Frank Herbert","nbrPages":412}`))
		}))
		defer server.Close()

		item, err := NewItemService(newTestClient(server.URL, "")).Get(context.Background(), "a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if item.ID != "a" || item.Title != "Dune" {
			t.Errorf("unexpected item %+v", item)
		}
	})

	t.Run("Save Creates Without ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/library-items" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}

			var raw map[string]json.RawMessage
			json.NewDecoder(r.Body).Decode(&raw)
			if string(raw["borrowDate"]) != "null" {
				t.Errorf("expected explicit null borrowDate, got %s", raw["borrowDate"])
			}

			w.Write([]byte(`{"id":"new","title":"Dune","type":"book","abbreviation":"D","isBorrowable":false,"categoryId":"1","borrowDate":null,"author":"Frank Herbert","nbrPages":412}`))
		}))
		defer server.Close()

		item := models.NewBook("Dune", "1", "Frank Herbert", 412)
		created, err := NewItemService(newTestClient(server.URL, "")).Save(context.Background(), item)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID != "new" {
			t.Errorf("expected server-assigned ID, got %q", created.ID)
		}
	})

	t.Run("Save Updates With ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/library-items/a" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"id":"a","title":"Dune","type":"book","abbreviation":"D","isBorrowable":false,"categoryId":"1","borrowDate":null,"author":"Frank Herbert","nbrPages":412}`))
		}))
		defer server.Close()

		item := models.NewBook("Dune", "1", "Frank Herbert", 412)
		item.ID = "a"
		if _, err := NewItemService(newTestClient(server.URL, "")).Save(context.Background(), item); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/api/library-items/a" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		if err := NewItemService(newTestClient(server.URL, "")).Delete(context.Background(), "a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestCategoryService(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/categories" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`[{"id":"1","name":"Fiction"},{"id":"2","name":"Film"}]`))
		}))
		defer server.Close()

		categories, err := NewCategoryService(newTestClient(server.URL, "")).List(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(categories) != 2 || categories[0].Name != "Fiction" {
			t.Errorf("unexpected categories %+v", categories)
		}
	})

	t.Run("Save Creates Without ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			if _, hasID := payload["id"]; hasID {
				t.Error("create payload should not carry an id")
			}
			w.Write([]byte(`{"id":"3","name":"` + payload["name"] + `"}`))
		}))
		defer server.Close()

		created, err := NewCategoryService(newTestClient(server.URL, "")).Save(context.Background(), models.Category{Name: "Sci-Fi"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID != "3" || created.Name != "Sci-Fi" {
			t.Errorf("unexpected category %+v", created)
		}
	})

	t.Run("Save Updates With ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/categories/1" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"id":"1","name":"Classics"}`))
		}))
		defer server.Close()

		updated, err := NewCategoryService(newTestClient(server.URL, "")).Save(context.Background(), models.Category{ID: "1", Name: "Classics"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Name != "Classics" {
			t.Errorf("unexpected category %+v", updated)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/api/categories/1" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		if err := NewCategoryService(newTestClient(server.URL, "")).Delete(context.Background(), "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

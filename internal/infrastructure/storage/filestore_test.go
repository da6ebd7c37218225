package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

func newTestFileStore(t *testing.T) *FileRecipeStore {
	t.Helper()
	store, err := NewFileRecipeStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecipeStore: %v", err)
	}
	return store
}

func testRecipe(title string, ingredients []string, tags ...string) *domain.Recipe {
	r := domain.NewRecipe(title)
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{Raw: ing})
	}
	r.Tags = tags
	return r
}

func TestFileStoreSaveAndGet(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	recipe := testRecipe("Pasta Carbonara", []string{"200g spaghetti", "2 eggs"}, "italian")
	servings := 2
	recipe.Servings = &servings

	if err := store.Save(ctx, recipe); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a saved recipe")
	}
	if got.Title != "Pasta Carbonara" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Raw != "200g spaghetti" {
		t.Errorf("Ingredients = %+v", got.Ingredients)
	}
	if got.Servings == nil || *got.Servings != 2 {
		t.Errorf("Servings = %v, want 2", got.Servings)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store := newTestFileStore(t)

	got, err := store.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for a missing recipe", got)
	}
}

func TestFileStoreGetCorrupt(t *testing.T) {
	// A corrupt document reads as not-found, never as a fatal error
	store := newTestFileStore(t)
	id := uuid.New()
	path := filepath.Join(store.dir, id.String()+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for a corrupt document", got)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	recipe := testRecipe("Original", nil)
	if err := store.Save(ctx, recipe); err != nil {
		t.Fatal(err)
	}
	firstUpdate := recipe.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	recipe.Title = "Renamed"
	if err := store.Save(ctx, recipe); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, recipe.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", got.Title)
	}
	if !got.UpdatedAt.After(firstUpdate) {
		t.Errorf("UpdatedAt not advanced: %v vs %v", got.UpdatedAt, firstUpdate)
	}

	list, err := store.List(ctx, -1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("list length = %d, want 1 after overwrite", len(list))
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	recipe := testRecipe("Toast", nil)
	if err := store.Save(ctx, recipe); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Delete(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Error("removed = false, want true")
	}

	// Second delete reports false, no error
	removed, err = store.Delete(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Error("removed = true for an absent recipe")
	}
}

func TestFileStoreListPagination(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := testRecipe(fmt.Sprintf("Recipe %d", i), nil)
		r.ID = uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i))
		if err := store.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantTitles []string
	}{
		{"all", -1, 0, []string{"Recipe 0", "Recipe 1", "Recipe 2", "Recipe 3", "Recipe 4"}},
		{"first two", 2, 0, []string{"Recipe 0", "Recipe 1"}},
		{"middle page", 2, 2, []string{"Recipe 2", "Recipe 3"}},
		{"short last page", 10, 4, []string{"Recipe 4"}},
		{"offset past end", 2, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("recipe[%d] = %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestFileStoreListSkipsCorrupt(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	good := testRecipe("Good", nil)
	if err := store.Save(ctx, good); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(store.dir, uuid.New().String()+".json")
	if err := os.WriteFile(bad, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := store.List(ctx, -1, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Good" {
		t.Errorf("got %d recipes, want just the readable one", len(got))
	}
}

func TestFileStoreSearch(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	seed := []*domain.Recipe{
		testRecipe("Pasta Carbonara", []string{"spaghetti", "eggs", "pancetta"}, "italian"),
		testRecipe("Chicken Curry", []string{"chicken breast", "curry paste"}, "spicy"),
		testRecipe("Caesar Salad", []string{"romaine", "grilled chicken", "croutons"}),
		testRecipe("Fruit Salad", []string{"apple", "banana"}, "dessert", "fresh"),
	}
	for _, r := range seed {
		if err := store.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name       string
		query      string
		wantTitles map[string]bool
	}{
		{"title match", "pasta", map[string]bool{"Pasta Carbonara": true}},
		{"case insensitive", "PASTA", map[string]bool{"Pasta Carbonara": true}},
		{"title or ingredient", "chicken", map[string]bool{"Chicken Curry": true, "Caesar Salad": true}},
		{"tag match", "fresh", map[string]bool{"Fruit Salad": true}},
		{"substring of title", "salad", map[string]bool{"Caesar Salad": true, "Fruit Salad": true}},
		{"no match", "pizza", map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, tt.query, 20)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.wantTitles))
			}
			for _, r := range got {
				if !tt.wantTitles[r.Title] {
					t.Errorf("unexpected match %q", r.Title)
				}
			}
		})
	}
}

func TestFileStoreSearchLimit(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, testRecipe(fmt.Sprintf("Bean Stew %d", i), nil)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Search(ctx, "bean", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d matches, want the limit of 3", len(got))
	}
}

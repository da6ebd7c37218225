// Package storage provides the persistence backends: a directory of
// per-recipe JSON documents, and a sqlite database for recipes, meal
// plans, grocery lists and users.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// searchScanCap bounds how many records a search scans before filtering.
// Past this many stored recipes, search silently stops seeing the rest;
// that is a documented scalability limit of the linear scan, kept
// explicit rather than extended.
const searchScanCap = 1000

// FileRecipeStore keeps one JSON document per recipe, keyed by identifier.
// Concurrent reads are safe; concurrent writes to the same identifier are
// last-write-wins, with no concurrency token. A reader that catches a
// half-written document sees it as corrupt, which reads as not-found.
type FileRecipeStore struct {
	dir string
}

// NewFileRecipeStore creates the store, making the directory if needed
func NewFileRecipeStore(dir string) (*FileRecipeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating recipes directory: %w", err)
	}
	log.Printf("[Storage] Recipe file store at %s", dir)
	return &FileRecipeStore{dir: dir}, nil
}

func (s *FileRecipeStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// Save upserts the recipe by identifier and stamps the update time
func (s *FileRecipeStore) Save(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recipe %s: %w", recipe.ID, err)
	}

	if err := os.WriteFile(s.path(recipe.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing recipe %s: %w", recipe.ID, err)
	}

	return nil
}

// Get returns the recipe, or (nil, nil) when it is absent or unreadable.
// A corrupt document is logged and treated as not-found, never as a
// fatal error.
func (s *FileRecipeStore) Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recipe %s: %w", id, err)
	}

	var recipe domain.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		log.Printf("[Storage] Corrupt recipe document %s: %v", id, err)
		return nil, nil
	}

	return &recipe, nil
}

// Delete removes the recipe, reporting false when it was already absent
func (s *FileRecipeStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	err := os.Remove(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting recipe %s: %w", id, err)
	}
	return true, nil
}

// List returns recipes ordered lexicographically by identifier, with
// offset/limit pagination. Unreadable documents are logged and skipped.
func (s *FileRecipeStore) List(ctx context.Context, limit, offset int) ([]*domain.Recipe, error) {
	names, err := s.documentNames()
	if err != nil {
		return nil, err
	}

	if offset >= len(names) {
		return nil, nil
	}
	names = names[offset:]
	if limit >= 0 && limit < len(names) {
		names = names[:limit]
	}

	recipes := make([]*domain.Recipe, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			log.Printf("[Storage] Error reading %s: %v", name, err)
			continue
		}
		var recipe domain.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			log.Printf("[Storage] Corrupt recipe document %s: %v", name, err)
			continue
		}
		recipes = append(recipes, &recipe)
	}

	return recipes, nil
}

// Search scans up to searchScanCap records and returns those whose title,
// ingredients or tags contain the query, case-insensitively, capped at
// limit. A recipe is added at most once: the first matching field wins.
func (s *FileRecipeStore) Search(ctx context.Context, query string, limit int) ([]*domain.Recipe, error) {
	all, err := s.List(ctx, searchScanCap, 0)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matches []*domain.Recipe
	for _, recipe := range all {
		if recipe.Matches(query) {
			matches = append(matches, recipe)
		}
	}

	if limit >= 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	return matches, nil
}

// documentNames lists recipe documents sorted by filename, which is
// sorted by identifier
func (s *FileRecipeStore) documentNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading recipes directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

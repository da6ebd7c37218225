package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// SQLiteRecipeStore is the relational recipe backend. It honors the same
// contract as FileRecipeStore, including the search semantics and the
// searchScanCap pre-filter bound.
type SQLiteRecipeStore struct {
	database *sql.DB
}

// NewSQLiteRecipeStore creates a recipe store over an open database
func NewSQLiteRecipeStore(database *sql.DB) *SQLiteRecipeStore {
	return &SQLiteRecipeStore{database: database}
}

func (s *SQLiteRecipeStore) Save(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("encoding recipe %s: %w", recipe.ID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO recipes (id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		recipe.ID.String(), string(doc), recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving recipe %s: %w", recipe.ID, err)
	}
	return nil
}

func (s *SQLiteRecipeStore) Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	var doc string
	err := s.database.QueryRowContext(ctx,
		`SELECT doc FROM recipes WHERE id = ?`, id.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding recipe %s: %w", id, err)
	}

	var recipe domain.Recipe
	if err := json.Unmarshal([]byte(doc), &recipe); err != nil {
		// Corrupt rows read as not-found, same as the file backend
		log.Printf("[Storage] Corrupt recipe row %s: %v", id, err)
		return nil, nil
	}
	return &recipe, nil
}

func (s *SQLiteRecipeStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.database.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ?`, id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("deleting recipe %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting recipe %s: %w", id, err)
	}
	return affected > 0, nil
}

func (s *SQLiteRecipeStore) List(ctx context.Context, limit, offset int) ([]*domain.Recipe, error) {
	rows, err := s.database.QueryContext(ctx,
		`SELECT id, doc FROM recipes ORDER BY id ASC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		var recipe domain.Recipe
		if err := json.Unmarshal([]byte(doc), &recipe); err != nil {
			log.Printf("[Storage] Corrupt recipe row %s: %v", id, err)
			continue
		}
		recipes = append(recipes, &recipe)
	}
	return recipes, rows.Err()
}

// Search scans up to searchScanCap rows in identifier order and filters
// them in process, so both backends match the same recipes for the same
// query.
func (s *SQLiteRecipeStore) Search(ctx context.Context, query string, limit int) ([]*domain.Recipe, error) {
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

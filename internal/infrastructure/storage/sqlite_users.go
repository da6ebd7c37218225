package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// UserStore persists users, their preferences and favorites.
type UserStore struct {
	database *sql.DB
}

// NewUserStore creates a user store over an open database
func NewUserStore(database *sql.DB) *UserStore {
	return &UserStore{database: database}
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user %s: %w", user.ID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO users (id, email, doc, updated_at) VALUES (?, ?, ?, ?)`,
		user.ID.String(), user.Email, string(doc), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("creating user %s: %w", user.ID, err)
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var doc string
	err := s.database.QueryRowContext(ctx,
		`SELECT doc FROM users WHERE id = ?`, id.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", id, err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(doc), &user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user %s: %w", user.ID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`UPDATE users SET email = ?, doc = ?, updated_at = ? WHERE id = ?`,
		user.Email, string(doc), user.UpdatedAt, user.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", user.ID, err)
	}
	return nil
}

// DeleteUser removes the user along with their preferences and favorites
func (s *UserStore) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.database.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`, id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("deleting user %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting user %s: %w", id, err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := s.database.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = ?`, id.String(),
	); err != nil {
		return true, fmt.Errorf("deleting preferences for user %s: %w", id, err)
	}
	if _, err := s.database.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = ?`, id.String(),
	); err != nil {
		return true, fmt.Errorf("deleting favorites for user %s: %w", id, err)
	}
	return true, nil
}

func (s *UserStore) SetPreferences(ctx context.Context, userID uuid.UUID, prefs *domain.UserPreferences) error {
	doc, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences for user %s: %w", userID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, doc) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc`,
		userID.String(), string(doc),
	)
	if err != nil {
		return fmt.Errorf("saving preferences for user %s: %w", userID, err)
	}
	return nil
}

func (s *UserStore) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	var doc string
	err := s.database.QueryRowContext(ctx,
		`SELECT doc FROM user_preferences WHERE user_id = ?`, userID.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding preferences for user %s: %w", userID, err)
	}

	var prefs domain.UserPreferences
	if err := json.Unmarshal([]byte(doc), &prefs); err != nil {
		return nil, fmt.Errorf("decoding preferences for user %s: %w", userID, err)
	}
	return &prefs, nil
}

func (s *UserStore) AddFavorite(ctx context.Context, userID uuid.UUID, fav *domain.UserFavorite) error {
	doc, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("encoding favorite: %w", err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO user_favorites (user_id, recipe_id, doc) VALUES (?, ?, ?)`,
		userID.String(), fav.RecipeID.String(), string(doc),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFavorite
		}
		return fmt.Errorf("adding favorite: %w", err)
	}
	return nil
}

func (s *UserStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.UserFavorite, error) {
	rows, err := s.database.QueryContext(ctx,
		`SELECT doc FROM user_favorites WHERE user_id = ? ORDER BY recipe_id ASC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*domain.UserFavorite
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		var fav domain.UserFavorite
		if err := json.Unmarshal([]byte(doc), &fav); err != nil {
			return nil, fmt.Errorf("decoding favorite: %w", err)
		}
		favorites = append(favorites, &fav)
	}
	return favorites, rows.Err()
}

func (s *UserStore) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result, err := s.database.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = ? AND recipe_id = ?`,
		userID.String(), recipeID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("removing favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing favorite: %w", err)
	}
	return affected > 0, nil
}

// isUniqueViolation matches the driver's constraint error without binding
// to its error types
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

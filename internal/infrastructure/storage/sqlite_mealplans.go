package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// MealPlanStore persists meal plans and their derived grocery lists.
type MealPlanStore struct {
	database *sql.DB
}

// NewMealPlanStore creates a meal plan store over an open database
func NewMealPlanStore(database *sql.DB) *MealPlanStore {
	return &MealPlanStore{database: database}
}

func (s *MealPlanStore) SavePlan(ctx context.Context, plan *domain.MealPlan) error {
	plan.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding meal plan %s: %w", plan.ID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_id, doc, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, doc = excluded.doc, updated_at = excluded.updated_at`,
		plan.ID.String(), plan.UserID.String(), string(doc), plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving meal plan %s: %w", plan.ID, err)
	}
	return nil
}

func (s *MealPlanStore) GetPlan(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
	var doc string
	err := s.database.QueryRowContext(ctx,
		`SELECT doc FROM meal_plans WHERE id = ?`, id.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding meal plan %s: %w", id, err)
	}

	var plan domain.MealPlan
	if err := json.Unmarshal([]byte(doc), &plan); err != nil {
		return nil, fmt.Errorf("decoding meal plan %s: %w", id, err)
	}
	return &plan, nil
}

func (s *MealPlanStore) ListPlans(ctx context.Context, userID *uuid.UUID) ([]*domain.MealPlan, error) {
	query := `SELECT doc FROM meal_plans ORDER BY id ASC`
	args := []any{}
	if userID != nil {
		query = `SELECT doc FROM meal_plans WHERE user_id = ? ORDER BY id ASC`
		args = append(args, userID.String())
	}

	rows, err := s.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.MealPlan
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		var plan domain.MealPlan
		if err := json.Unmarshal([]byte(doc), &plan); err != nil {
			return nil, fmt.Errorf("decoding meal plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes the plan and its grocery lists, reporting false when
// the plan was absent
func (s *MealPlanStore) DeletePlan(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.database.ExecContext(ctx,
		`DELETE FROM meal_plans WHERE id = ?`, id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("deleting meal plan %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting meal plan %s: %w", id, err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := s.database.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE meal_plan_id = ?`, id.String(),
	); err != nil {
		return true, fmt.Errorf("deleting grocery lists for plan %s: %w", id, err)
	}
	return true, nil
}

func (s *MealPlanStore) SaveGroceryList(ctx context.Context, list *domain.GroceryList) error {
	list.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding grocery list %s: %w", list.ID, err)
	}

	_, err = s.database.ExecContext(ctx,
		`INSERT INTO grocery_lists (id, meal_plan_id, user_id, doc, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET meal_plan_id = excluded.meal_plan_id, user_id = excluded.user_id, doc = excluded.doc, updated_at = excluded.updated_at`,
		list.ID.String(), list.MealPlanID.String(), list.UserID.String(), string(doc), list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving grocery list %s: %w", list.ID, err)
	}
	return nil
}

func (s *MealPlanStore) GetGroceryList(ctx context.Context, id uuid.UUID) (*domain.GroceryList, error) {
	return s.groceryListWhere(ctx, `id = ?`, id)
}

// GroceryListForPlan returns the one list derived from the given plan
func (s *MealPlanStore) GroceryListForPlan(ctx context.Context, planID uuid.UUID) (*domain.GroceryList, error) {
	return s.groceryListWhere(ctx, `meal_plan_id = ?`, planID)
}

func (s *MealPlanStore) groceryListWhere(ctx context.Context, where string, id uuid.UUID) (*domain.GroceryList, error) {
	var doc string
	err := s.database.QueryRowContext(ctx,
		`SELECT doc FROM grocery_lists WHERE `+where, id.String(),
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding grocery list %s: %w", id, err)
	}

	var list domain.GroceryList
	if err := json.Unmarshal([]byte(doc), &list); err != nil {
		return nil, fmt.Errorf("decoding grocery list %s: %w", id, err)
	}
	return &list, nil
}

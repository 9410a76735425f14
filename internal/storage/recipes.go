package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/parser"
)

// SaveRecipes inserts or replaces recipes by id. Ingredient lines without parsed
// data are parsed here so every stored line carries it.
func (s *SQLiteStorage) SaveRecipes(ctx context.Context, recipes []model.Recipe) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecipes(recipes); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range recipes {
			if err := s.saveRecipeTx(ctx, tx, &recipes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Saved recipes", "count", len(recipes))
	return nil
}

func (s *SQLiteStorage) saveRecipeTx(ctx context.Context, tx *sql.Tx, r *model.Recipe) error {
	tags, err := marshalStrings(r.Tags)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, name, category, tags, prep_seconds, cook_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			tags = excluded.tags,
			prep_seconds = excluded.prep_seconds,
			cook_seconds = excluded.cook_seconds
	`, r.ID, r.Name, r.Category, tags, int64(r.PrepTime/time.Second), int64(r.CookTime/time.Second))
	if err != nil {
		return fmt.Errorf("failed to save recipe %q: %w", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear ingredients of recipe %q: %w", r.ID, err)
	}

	for pos := range r.Ingredients {
		ing := &r.Ingredients[pos]
		if ing.Parsed == nil {
			parsed := parser.Parse(ing.Raw)
			ing.Parsed = &parsed
		}

		parsed, err := json.Marshal(ing.Parsed)
		if err != nil {
			return fmt.Errorf("failed to marshal parsed ingredient: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, raw, canonical_id, quantity, unit, parsed)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, pos, ing.Raw, ing.CanonicalID, ing.Quantity, ing.Unit, string(parsed)); err != nil {
			return fmt.Errorf("failed to save ingredient %d of recipe %q: %w", pos, r.ID, err)
		}
	}

	return nil
}

// Recipes returns every recipe ordered by id.
func (s *SQLiteStorage) Recipes(ctx context.Context) ([]model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, tags, prep_seconds, cook_seconds
		FROM recipes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	_ = rows.Close()

	// Ingredients are loaded after the recipe cursor is closed; the pool has one connection.
	byID, err := s.loadIngredients(ctx, s.db, "")
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Ingredients = byID[recipes[i].ID]
	}

	return recipes, nil
}

// GetRecipe returns one recipe or common.ErrNotFound.
func (s *SQLiteStorage) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, tags, prep_seconds, cook_seconds
		FROM recipes
		WHERE id = ?
	`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	byID, err := s.loadIngredients(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	r.Ingredients = byID[id]

	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (model.Recipe, error) {
	var r model.Recipe
	var tags string
	var prep, cook int64
	if err := row.Scan(&r.ID, &r.Name, &r.Category, &tags, &prep, &cook); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan recipe: %w", err)
	}

	var err error
	if r.Tags, err = unmarshalStrings(tags); err != nil {
		return r, fmt.Errorf("recipe %q tags: %w", r.ID, err)
	}
	r.PrepTime = time.Duration(prep) * time.Second
	r.CookTime = time.Duration(cook) * time.Second
	return r, nil
}

// loadIngredients returns ingredient lines grouped by recipe id, in position
// order. An empty recipeID loads every recipe's lines.
func (s *SQLiteStorage) loadIngredients(ctx context.Context, q queryable, recipeID string) (map[string][]model.RecipeIngredient, error) {
	query := `
		SELECT recipe_id, raw, canonical_id, quantity, unit, parsed
		FROM recipe_ingredients
	`
	var args []any
	if recipeID != "" {
		query += ` WHERE recipe_id = ?`
		args = append(args, recipeID)
	}
	query += ` ORDER BY recipe_id, position`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]model.RecipeIngredient)
	for rows.Next() {
		var (
			id          string
			ing         model.RecipeIngredient
			canonicalID sql.NullString
			quantity    sql.NullFloat64
			parsed      sql.NullString
		)
		if err := rows.Scan(&id, &ing.Raw, &canonicalID, &quantity, &ing.Unit, &parsed); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}

		if canonicalID.Valid {
			ing.CanonicalID = &canonicalID.String
		}
		if quantity.Valid {
			ing.Quantity = &quantity.Float64
		}
		if parsed.Valid {
			var p model.ParsedIngredient
			if err := json.Unmarshal([]byte(parsed.String), &p); err != nil {
				return nil, fmt.Errorf("failed to unmarshal parsed ingredient of recipe %q: %w", id, err)
			}
			ing.Parsed = &p
		}

		out[id] = append(out[id], ing)
	}

	return out, rows.Err()
}

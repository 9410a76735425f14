package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Veraticus/larder/internal/model"
)

// SaveCanonicalIngredients inserts or replaces canonical ingredients by id.
func (s *SQLiteStorage) SaveCanonicalIngredients(ctx context.Context, ings []model.CanonicalIngredient) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCanonicalIngredients(ings); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO canonical_ingredients
				(id, name, category, density, density_group, safe_conversions, aliases, groups_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				category = excluded.category,
				density = excluded.density,
				density_group = excluded.density_group,
				safe_conversions = excluded.safe_conversions,
				aliases = excluded.aliases,
				groups_json = excluded.groups_json
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, ing := range ings {
			aliases, err := marshalStrings(ing.Aliases)
			if err != nil {
				return err
			}
			groups, err := marshalStrings(ing.Groups)
			if err != nil {
				return err
			}

			if _, err := stmt.ExecContext(ctx,
				ing.ID, ing.Name, ing.Category, ing.Density, ing.DensityGroup,
				ing.SafeConversions, aliases, groups,
			); err != nil {
				return fmt.Errorf("failed to save canonical ingredient %q: %w", ing.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Saved canonical ingredients", "count", len(ings))
	return nil
}

// CanonicalIngredients returns the whole catalog ordered by id.
func (s *SQLiteStorage) CanonicalIngredients(ctx context.Context) ([]model.CanonicalIngredient, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, density, density_group, safe_conversions, aliases, groups_json
		FROM canonical_ingredients
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query canonical ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ings []model.CanonicalIngredient
	for rows.Next() {
		var ing model.CanonicalIngredient
		var aliases, groups string
		if err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Category,
			&ing.Density,
			&ing.DensityGroup,
			&ing.SafeConversions,
			&aliases,
			&groups,
		); err != nil {
			return nil, fmt.Errorf("failed to scan canonical ingredient: %w", err)
		}

		if ing.Aliases, err = unmarshalStrings(aliases); err != nil {
			return nil, fmt.Errorf("canonical ingredient %q aliases: %w", ing.ID, err)
		}
		if ing.Groups, err = unmarshalStrings(groups); err != nil {
			return nil, fmt.Errorf("canonical ingredient %q groups: %w", ing.ID, err)
		}
		ings = append(ings, ing)
	}

	return ings, rows.Err()
}

func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal list: %w", err)
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

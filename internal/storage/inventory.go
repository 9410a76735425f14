package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/service"
)

// Inventory returns every inventory item ordered by id, together with the
// inventory version. Both are read in one transaction so they agree.
func (s *SQLiteStorage) Inventory(ctx context.Context) (service.InventorySnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return service.InventorySnapshot{}, err
	}

	var snap service.InventorySnapshot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		snap, err = inventoryTx(ctx, tx)
		return err
	})
	if err != nil {
		return service.InventorySnapshot{}, err
	}

	return snap, nil
}

// inventoryTx reads a fresh snapshot inside tx. It never appends to state from
// an earlier attempt, so withTx may retry it.
func inventoryTx(ctx context.Context, tx *sql.Tx) (service.InventorySnapshot, error) {
	version, err := inventoryVersionTx(ctx, tx)
	if err != nil {
		return service.InventorySnapshot{}, err
	}
	snap := service.InventorySnapshot{Version: version}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, canonical_id, quantity, unit, category, location, expires_at, updated_at
		FROM inventory_items
		ORDER BY id
	`)
	if err != nil {
		return service.InventorySnapshot{}, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return service.InventorySnapshot{}, err
		}
		snap.Items = append(snap.Items, item)
	}
	if err := rows.Err(); err != nil {
		return service.InventorySnapshot{}, err
	}
	return snap, nil
}

// InventoryVersion returns the current inventory version.
func (s *SQLiteStorage) InventoryVersion(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return inventoryVersionTx(ctx, s.db)
}

// GetInventoryItem returns one item or common.ErrNotFound.
func (s *SQLiteStorage) GetInventoryItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	item, err := scanInventoryItem(s.db.QueryRowContext(ctx, `
		SELECT id, name, canonical_id, quantity, unit, category, location, expires_at, updated_at
		FROM inventory_items
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveInventoryItem inserts or replaces an item and returns the new inventory
// version. UpdatedAt is set to now when zero.
func (s *SQLiteStorage) SaveInventoryItem(ctx context.Context, item *model.InventoryItem) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateInventoryItem(item); err != nil {
		return 0, err
	}

	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}

	var version int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var expires any
		if item.ExpiresAt != nil {
			expires = item.ExpiresAt.UTC()
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_items
				(id, name, canonical_id, quantity, unit, category, location, expires_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				canonical_id = excluded.canonical_id,
				quantity = excluded.quantity,
				unit = excluded.unit,
				category = excluded.category,
				location = excluded.location,
				expires_at = excluded.expires_at,
				updated_at = excluded.updated_at
		`, item.ID, item.Name, item.CanonicalID, item.Quantity, item.Unit, item.Category,
			item.Location, expires, item.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to save inventory item %q: %w", item.ID, err)
		}

		var err error
		version, err = bumpInventoryVersionTx(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}

	return version, nil
}

// DeleteInventoryItem removes an item and returns the new inventory version,
// or common.ErrNotFound when no such item exists.
func (s *SQLiteStorage) DeleteInventoryItem(ctx context.Context, id string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(id, "id"); err != nil {
		return 0, err
	}

	var version int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete inventory item %q: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("inventory item %q: %w", id, common.ErrNotFound)
		}

		version, err = bumpInventoryVersionTx(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}

	return version, nil
}

func inventoryVersionTx(ctx context.Context, q queryable) (int64, error) {
	var version int64
	if err := q.QueryRowContext(ctx, `SELECT version FROM inventory_version WHERE id = 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read inventory version: %w", err)
	}
	return version, nil
}

func bumpInventoryVersionTx(ctx context.Context, q queryable) (int64, error) {
	if _, err := q.ExecContext(ctx, `UPDATE inventory_version SET version = version + 1 WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("failed to bump inventory version: %w", err)
	}
	return inventoryVersionTx(ctx, q)
}

func scanInventoryItem(row scanner) (model.InventoryItem, error) {
	var (
		item        model.InventoryItem
		canonicalID sql.NullString
		expiresAt   sql.NullTime
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&canonicalID,
		&item.Quantity,
		&item.Unit,
		&item.Category,
		&item.Location,
		&expiresAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return item, err
	}
	if err != nil {
		return item, fmt.Errorf("failed to scan inventory item: %w", err)
	}

	if canonicalID.Valid {
		item.CanonicalID = &canonicalID.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		item.ExpiresAt = &t
	}
	item.UpdatedAt = item.UpdatedAt.UTC()
	return item, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
)

// AddShoppingItem appends an entry to the shopping list. Duplicates are
// allowed here, matching a user typing the same item twice.
func (s *SQLiteStore) AddShoppingItem(ctx context.Context, name string) (*model.ShoppingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalid)
	}
	item, err := s.insertShopping(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	s.log.Info("shopping item added", zap.String("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// DeleteShoppingItem removes an entry from the shopping list.
func (s *SQLiteStore) DeleteShoppingItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shopping WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shopping item %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListShopping lists the shopping list in insertion order.
func (s *SQLiteStore) ListShopping(ctx context.Context) ([]model.ShoppingItem, error) {
	return listShopping(ctx, s.db)
}

// AddPantryToShopping queues a pantry item on the shopping list. It returns
// nil without adding anything when an entry with the same normalized name is
// already queued.
func (s *SQLiteStore) AddPantryToShopping(ctx context.Context, pantryID string) (*model.ShoppingItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	item, err := getPantryItem(ctx, tx, pantryID)
	if err != nil {
		return nil, err
	}
	queued, err := listShopping(ctx, tx)
	if err != nil {
		return nil, err
	}
	for _, q := range queued {
		if match.Equal(q.Name, item.Name) {
			return nil, nil
		}
	}

	added, err := s.insertShopping(ctx, tx, item.Name)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("pantry item queued for shopping", zap.String("pantry_id", pantryID), zap.String("name", item.Name))
	return added, nil
}

// MarkPurchased moves a shopping entry into the pantry: the pantry item with
// the same normalized name becomes available, or a new one is created. The
// entry is then removed from the list.
func (s *SQLiteStore) MarkPurchased(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM shopping WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("shopping item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if err := s.restock(ctx, tx, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("shopping item purchased", zap.String("id", id), zap.String("name", name))
	return nil
}

// MarkAllPurchased restocks every shopping entry and empties the list.
// It returns the number of entries purchased.
func (s *SQLiteStore) MarkAllPurchased(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	items, err := listShopping(ctx, tx)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if err := s.restock(ctx, tx, it.Name); err != nil {
			return 0, err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping`); err != nil {
		return 0, fmt.Errorf("clear shopping: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.log.Info("shopping list purchased", zap.Int("items", len(items)))
	return len(items), nil
}

func (s *SQLiteStore) restock(ctx context.Context, q querier, name string) error {
	existing, err := findPantryByName(ctx, q, name, "")
	if err != nil {
		return err
	}
	if existing != nil {
		_, err := q.ExecContext(ctx, `UPDATE pantry SET available = 1 WHERE id = ?`, existing.ID)
		return err
	}
	_, err = s.insertPantry(ctx, q, name, true)
	return err
}

func (s *SQLiteStore) insertShopping(ctx context.Context, q querier, name string) (*model.ShoppingItem, error) {
	item := &model.ShoppingItem{ID: s.newID(), Name: name}
	_, err := q.ExecContext(ctx,
		`INSERT INTO shopping (id, name, created_at) VALUES (?, ?, ?)`,
		item.ID, item.Name, formatTime(s.now()))
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	return item, nil
}

func listShopping(ctx context.Context, q querier) ([]model.ShoppingItem, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM shopping ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.ShoppingItem{}
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

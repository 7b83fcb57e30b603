package store

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/pantrypal/internal/feasibility"
	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
)

// AddPantryItem creates an available pantry item. Names are unique after
// normalization; a clash returns ErrDuplicate.
func (s *SQLiteStore) AddPantryItem(ctx context.Context, name string) (*model.PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalid)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if existing, err := findPantryByName(ctx, tx, name, ""); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("pantry item %q: %w", existing.Name, ErrDuplicate)
	}

	item, err := s.insertPantry(ctx, tx, name, true)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("pantry item added", zap.String("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// RenamePantryItem renames an item, rejecting names that clash with another
// item.
func (s *SQLiteStore) RenamePantryItem(ctx context.Context, id, name string) (*model.PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalid)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	item, err := getPantryItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := findPantryByName(ctx, tx, name, id); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("pantry item %q: %w", existing.Name, ErrDuplicate)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE pantry SET name = ? WHERE id = ?`, name, id); err != nil {
		return nil, fmt.Errorf("rename pantry item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("pantry item renamed", zap.String("id", id), zap.String("from", item.Name), zap.String("to", name))
	item.Name = name
	return item, nil
}

// SetAvailable marks a pantry item in or out of stock.
func (s *SQLiteStore) SetAvailable(ctx context.Context, id string, available bool) (*model.PantryItem, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE pantry SET available = ? WHERE id = ?`, boolInt(available), id)
	if err != nil {
		return nil, fmt.Errorf("update pantry item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("pantry item %s: %w", id, ErrNotFound)
	}
	s.log.Debug("pantry availability changed", zap.String("id", id), zap.Bool("available", available))
	return getPantryItem(ctx, s.db, id)
}

// DeletePantryItem removes a pantry item.
func (s *SQLiteStore) DeletePantryItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pantry WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pantry item %s: %w", id, ErrNotFound)
	}
	s.log.Info("pantry item deleted", zap.String("id", id))
	return nil
}

// ListPantry lists pantry items, optionally filtered and sorted.
// Sort "alpha" orders by name; "available" puts in-stock items first, then
// by name. Any other value keeps insertion order.
func (s *SQLiteStore) ListPantry(ctx context.Context, p ListPantryParams) ([]model.PantryItem, error) {
	items, err := listPantry(ctx, s.db)
	if err != nil {
		return nil, err
	}

	if q := match.Normalize(p.Query); q != "" {
		filtered := items[:0]
		for _, it := range items {
			if strings.Contains(match.Normalize(it.Name), q) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	switch p.Sort {
	case "alpha":
		sort.SliceStable(items, func(i, j int) bool {
			return feasibility.CompareNames(items[i].Name, items[j].Name) < 0
		})
	case "available":
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Available != items[j].Available {
				return items[i].Available
			}
			return feasibility.CompareNames(items[i].Name, items[j].Name) < 0
		})
	}
	return items, nil
}

// ImportPantryList adds one available item per non-blank line of r,
// skipping names that already exist.
func (s *SQLiteStore) ImportPantryList(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pantry list: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no items found", ErrInvalid)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &ImportResult{}
	for _, name := range names {
		existing, err := findPantryByName(ctx, tx, name, "")
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}
		if _, err := s.insertPantry(ctx, tx, name, true); err != nil {
			return nil, err
		}
		result.Imported++
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("pantry list imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *SQLiteStore) insertPantry(ctx context.Context, q querier, name string, available bool) (*model.PantryItem, error) {
	item := &model.PantryItem{ID: s.newID(), Name: name, Available: available}
	_, err := q.ExecContext(ctx,
		`INSERT INTO pantry (id, name, available, created_at) VALUES (?, ?, ?, ?)`,
		item.ID, item.Name, boolInt(available), formatTime(s.now()))
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	return item, nil
}

func getPantryItem(ctx context.Context, q querier, id string) (*model.PantryItem, error) {
	item, err := scanPantryItem(q.QueryRowContext(ctx,
		`SELECT id, name, available FROM pantry WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pantry item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// findPantryByName returns the item whose normalized name equals name,
// ignoring the item with id exclude. It returns nil when there is none.
func findPantryByName(ctx context.Context, q querier, name, exclude string) (*model.PantryItem, error) {
	items, err := listPantry(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID != exclude && match.Equal(it.Name, name) {
			return &it, nil
		}
	}
	return nil, nil
}

func listPantry(ctx context.Context, q querier) ([]model.PantryItem, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, available FROM pantry ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.PantryItem{}
	for rows.Next() {
		it, err := scanPantryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

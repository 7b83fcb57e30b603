package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rcliao/pantrypal/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
	log     *zap.Logger
	now     func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for store events.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Debug("store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pantry (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		available   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recipes (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		category     TEXT NOT NULL DEFAULT '',
		ingredients  TEXT NOT NULL DEFAULT '[]',
		instructions TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shopping (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS planner (
		slot        TEXT PRIMARY KEY,
		recipe_id   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_planner_recipe ON planner(recipe_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Snapshot reads all collections in one transaction.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snap, err := snapshot(ctx, tx)
	if err != nil {
		return nil, err
	}
	return snap, tx.Commit()
}

func snapshot(ctx context.Context, q querier) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Pantry, err = listPantry(ctx, q); err != nil {
		return nil, fmt.Errorf("read pantry: %w", err)
	}
	if snap.Recipes, err = listRecipes(ctx, q); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	if snap.Shopping, err = listShopping(ctx, q); err != nil {
		return nil, fmt.Errorf("read shopping: %w", err)
	}
	if snap.Planner, err = listPlanner(ctx, q); err != nil {
		return nil, fmt.Errorf("read planner: %w", err)
	}
	return &snap, nil
}

var collections = map[string]bool{
	Pantry:   true,
	Recipes:  true,
	Shopping: true,
	Planner:  true,
}

// Clear empties a collection.
func (s *SQLiteStore) Clear(ctx context.Context, collection string) error {
	if !collections[collection] {
		return fmt.Errorf("%w: unknown collection %q", ErrInvalid, collection)
	}
	// collection is validated above, so it is safe to interpolate.
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+collection)
	if err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	n, _ := res.RowsAffected()
	s.log.Info("collection cleared", zap.String("collection", collection), zap.Int64("rows", n))
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPantryItem(row scanner) (model.PantryItem, error) {
	var p model.PantryItem
	var available int
	if err := row.Scan(&p.ID, &p.Name, &available); err != nil {
		return p, err
	}
	p.Available = available != 0
	return p, nil
}

func scanRecipe(row scanner) (model.Recipe, error) {
	var r model.Recipe
	var ingredientsJSON, instructions, createdAt string

	err := row.Scan(&r.ID, &r.Name, &r.Category, &ingredientsJSON, &instructions, &createdAt)
	if err != nil {
		return r, err
	}

	r.Instructions = model.Instructions(instructions)
	r.Created, _ = time.Parse(time.RFC3339, createdAt)
	if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
		return r, fmt.Errorf("decode ingredients of recipe %s: %w", r.ID, err)
	}
	if r.Ingredients == nil {
		r.Ingredients = []model.Ingredient{}
	}
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

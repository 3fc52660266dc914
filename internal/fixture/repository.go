// Package fixture backs the stub collaborator server: an sqlite catalog of
// products and stock levels for local development and tests.
package fixture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/webstore/cart-engine/internal/domain"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, image_url
		FROM products
		WHERE id = ?
	`

	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

func (r *Repository) GetStock(ctx context.Context, id int64) (*domain.Stock, error) {
	query := `
		SELECT id, amount
		FROM stock
		WHERE id = ?
	`

	s := &domain.Stock{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stock: %w", err)
	}

	return s, nil
}

// SetStock overwrites the stock level for a product. Used by tests and local
// setups to stage scenarios.
func (r *Repository) SetStock(ctx context.Context, id int64, amount int) error {
	query := `
		INSERT INTO stock (id, amount) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET amount = excluded.amount
	`

	if _, err := r.db.ExecContext(ctx, query, id, amount); err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

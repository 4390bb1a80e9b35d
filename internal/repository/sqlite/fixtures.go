package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ivannaromanovych/product-categories/internal/model"
	"github.com/ivannaromanovych/product-categories/internal/repository"
)

// compile-time checks that *DB serves and accepts fixtures
var (
	_ repository.FixtureSource = (*DB)(nil)
	_ repository.Seeder        = (*DB)(nil)
)

// Load reads all three tables, each ordered by id.
func (db *DB) Load(ctx context.Context) (*model.Tables, error) {
	var t model.Tables
	var err error

	if t.Users, err = db.loadUsers(ctx); err != nil {
		return nil, err
	}
	if t.Categories, err = db.loadCategories(ctx); err != nil {
		return nil, err
	}
	if t.Products, err = db.loadProducts(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (db *DB) loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, sex FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Sex); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}

func (db *DB) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, icon, owner_id FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Icon, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}
	return categories, nil
}

func (db *DB) loadProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, category_id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}
	return products, nil
}

// IsEmpty reports whether the products table has no rows.
func (db *DB) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, fmt.Errorf("sqlite: counting products: %w", err)
	}
	return count == 0, nil
}

// Seed replaces the contents of all three tables with t, in one transaction.
func (db *DB) Seed(ctx context.Context, t *model.Tables) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning seed: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"products", "categories", "users"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("sqlite: clearing %s: %w", table, err)
		}
	}

	if err = insertAll(ctx, tx, `INSERT INTO users (id, name, sex) VALUES (?, ?, ?)`,
		len(t.Users), func(i int) []any {
			u := t.Users[i]
			return []any{u.ID, u.Name, string(u.Sex)}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding users: %w", err)
	}

	if err = insertAll(ctx, tx, `INSERT INTO categories (id, title, icon, owner_id) VALUES (?, ?, ?, ?)`,
		len(t.Categories), func(i int) []any {
			c := t.Categories[i]
			return []any{c.ID, c.Title, c.Icon, c.OwnerID}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding categories: %w", err)
	}

	if err = insertAll(ctx, tx, `INSERT INTO products (id, name, category_id) VALUES (?, ?, ?)`,
		len(t.Products), func(i int) []any {
			p := t.Products[i]
			return []any{p.ID, p.Name, p.CategoryID}
		}); err != nil {
		return fmt.Errorf("sqlite: seeding products: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing seed: %w", err)
	}
	return nil
}

// insertAll runs one prepared statement n times with the arguments from args.
func insertAll(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

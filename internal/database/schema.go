package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   SERIAL PRIMARY KEY,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id         SERIAL PRIMARY KEY,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	category   INTEGER NOT NULL,
	difficulty INTEGER NOT NULL
);
`

// seedCategories is the default category set, inserted only when the
// categories table is empty. Questions deliberately carry no foreign-key
// constraint on category: a dangling reference is allowed and is not an
// error.
var seedCategories = []string{
	"Science",
	"Art",
	"Geography",
	"History",
	"Entertainment",
	"Sports",
}

// EnsureSchema creates the tables if they do not exist and seeds the
// category set on first run.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, categoryType := range seedCategories {
		if _, err := pool.Exec(ctx, `INSERT INTO categories (type) VALUES ($1)`, categoryType); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", categoryType, err)
		}
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// CategoryRepository provides read-only access to category records.
// Categories are seeded by migration and never mutated at runtime.
type CategoryRepository struct {
	db querier
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by display type ascending. An
// empty table yields an empty slice; callers decide whether that is an
// error condition.
func (r *CategoryRepository) List(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories ORDER BY type ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return categories, nil
}

// GetByID fetches one category, ErrCategoryNotFound when absent.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (trivia.Category, error) {
	var c trivia.Category
	err := r.db.QueryRow(ctx, `SELECT id, type FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, trivia.ErrCategoryNotFound
		}
		return trivia.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"spendwise/internal/common"
	"spendwise/internal/model"

	"github.com/google/uuid"
)

// Display defaults applied when a category is created without an icon
// or color.
const (
	defaultCategoryIcon  = "fa-tag"
	defaultCategoryColor = "#6366f1"
)

// ListCategories returns all categories sorted by name ascending.
// Ordering uses SQLite's BINARY collation, i.e. case-sensitive
// byte-wise lexical comparison.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listCategoriesTx(ctx, s.db)
}

func (s *SQLiteStorage) listCategoriesTx(ctx context.Context, q queryable) ([]model.Category, error) {
	query := `
		SELECT id, name, icon, color
		FROM categories
		ORDER BY name`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by its id.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getCategoryByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getCategoryByIDTx(ctx context.Context, q queryable, id string) (*model.Category, error) {
	query := `
		SELECT id, name, icon, color
		FROM categories
		WHERE id = ?`

	var cat model.Category
	err := q.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// AddCategory creates a new category with a fresh id. Name uniqueness
// is not enforced at this layer.
func (s *SQLiteStorage) AddCategory(ctx context.Context, name, icon, color string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.addCategoryTx(ctx, s.db, name, icon, color)
}

func (s *SQLiteStorage) addCategoryTx(ctx context.Context, q queryable, name, icon, color string) (*model.Category, error) {
	trimmed, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}
	if color == "" {
		color = defaultCategoryColor
	}

	category := &model.Category{
		ID:    uuid.NewString(),
		Name:  trimmed,
		Icon:  icon,
		Color: color,
	}

	query := `
		INSERT INTO categories (id, name, icon, color)
		VALUES (?, ?, ?, ?)`

	if _, err := q.ExecContext(ctx, query, category.ID, category.Name, category.Icon, category.Color); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created new category", "name", category.Name, "id", category.ID)
	return category, nil
}

// UpdateCategory replaces the mutable fields of a category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.updateCategoryTx(ctx, s.db, category)
}

func (s *SQLiteStorage) updateCategoryTx(ctx context.Context, q queryable, category *model.Category) (*model.Category, error) {
	if category == nil {
		return nil, fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.ID, "id"); err != nil {
		return nil, err
	}
	trimmed, err := validateCategoryName(category.Name)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE categories
		SET name = ?, icon = ?, color = ?
		WHERE id = ?`

	result, err := q.ExecContext(ctx, query, trimmed, category.Icon, category.Color, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, category.ID)
	}

	return s.getCategoryByIDTx(ctx, q, category.ID)
}

// DeleteCategory removes a category. Expenses referencing it keep
// their dangling category id; there is no cascade. Deleting an absent
// id returns ErrNotFound.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.deleteCategoryTx(ctx, s.db, id)
}

func (s *SQLiteStorage) deleteCategoryTx(ctx context.Context, q queryable, id string) error {
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}

	slog.Info("deleted category", "id", id)
	return nil
}

// EnsureDefaultCategories seeds the fixed default set when the
// registry is empty. It never reseeds once any category exists, so
// repeated calls are idempotent.
func (s *SQLiteStorage) EnsureDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.ensureDefaultCategoriesTx(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) ensureDefaultCategoriesTx(ctx context.Context, q queryable) error {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO categories (id, name, icon, color)
		VALUES (?, ?, ?, ?)`

	for _, cat := range model.DefaultCategories() {
		if _, err := q.ExecContext(ctx, query, cat.ID, cat.Name, cat.Icon, cat.Color); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	slog.Info("seeded default categories", "count", len(model.DefaultCategories()))
	return nil
}

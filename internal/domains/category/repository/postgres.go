package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"photobook-backend/internal/domains/category"
	"photobook-backend/pkg/database"
	"photobook-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the category store backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

const categoryColumns = `
	id, parent_id, slug, name, description,
	image_url, banner_image, sort_order, is_active,
	created_at, updated_at`

// row abstracts pgx.Row for the scan helper.
type row interface {
	Scan(dest ...any) error
}

func scanCategory(r row) (*category.Category, error) {
	var c category.Category
	err := r.Scan(
		&c.ID, &c.ParentID, &c.Slug, &c.Name, &c.Description,
		&c.ImageURL, &c.BannerImage, &c.SortOrder, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	query := `
		INSERT INTO categories (
			id, parent_id, slug, name, description,
			image_url, banner_image, sort_order, is_active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + categoryColumns

	created, err := scanCategory(r.pool.QueryRow(ctx, query,
		entity.ID, entity.ParentID, entity.Slug, entity.Name, entity.Description,
		entity.ImageURL, entity.BannerImage, entity.SortOrder, entity.IsActive,
		entity.CreatedAt, entity.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "categories_slug_key" {
				return nil, category.ErrDuplicateSlug
			}
			if pgErr.ConstraintName == "categories_parent_id_fkey" {
				return nil, category.ErrParentNotFound
			}
		}
		logger.Error("category create: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY sort_order, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func (r *postgresRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE parent_id = $1
		ORDER BY sort_order, created_at`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows pgx.Rows) ([]category.Category, error) {
	var items []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	query := `
		UPDATE categories
		SET parent_id = $2, slug = $3, name = $4, description = $5,
			image_url = $6, banner_image = $7, sort_order = $8,
			is_active = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + categoryColumns

	updated, err := scanCategory(r.pool.QueryRow(ctx, query,
		entity.ID, entity.ParentID, entity.Slug, entity.Name, entity.Description,
		entity.ImageURL, entity.BannerImage, entity.SortOrder,
		entity.IsActive, entity.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "categories_slug_key" {
			return nil, category.ErrDuplicateSlug
		}
		logger.Error("category update: database error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check children: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteRows(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := tx.Query(ctx, `DELETE FROM categories WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete category rows: %w", err)
	}
	defer rows.Close()

	var deleted []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deleted id: %w", err)
		}
		deleted = append(deleted, id)
	}
	return deleted, rows.Err()
}

func (r *postgresRepository) EnsureUncategorized(ctx context.Context, tx pgx.Tx) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	existing, err := scanCategory(tx.QueryRow(ctx, query, category.UncategorizedSlug))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up placeholder: %w", err)
	}

	placeholder := category.NewUncategorizedPlaceholder()

	insert := `
		INSERT INTO categories (
			id, parent_id, slug, name, description,
			image_url, banner_image, sort_order, is_active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + categoryColumns

	created, err := scanCategory(tx.QueryRow(ctx, insert,
		placeholder.ID, placeholder.ParentID, placeholder.Slug,
		placeholder.Name, placeholder.Description,
		placeholder.ImageURL, placeholder.BannerImage, placeholder.SortOrder,
		placeholder.IsActive, placeholder.CreatedAt, placeholder.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder: %w", err)
	}

	logger.Info("created uncategorized placeholder", map[string]interface{}{
		"id": created.ID.String(),
	})
	return created, nil
}

// ExecutePlan applies a deletion plan inside one transaction. The
// subtree is re-read (and locked) before any destructive write so a
// plan made stale by a concurrent delete fails with
// ErrCategoryNotFound instead of acting on rows that no longer match.
func (r *postgresRepository) ExecutePlan(ctx context.Context, plan *category.DeletionPlan) (*category.DeletionResult, error) {
	result, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*category.DeletionResult, error) {
		return r.executePlanTx(ctx, tx, plan)
	})
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) || errors.Is(err, category.ErrCategoryHasProducts) {
			return nil, err
		}
		logger.Error("deletion plan execution failed", err)
		return nil, fmt.Errorf("%w: %w", category.ErrExecutionFailed, err)
	}
	return result, nil
}

func (r *postgresRepository) executePlanTx(ctx context.Context, tx pgx.Tx, plan *category.DeletionPlan) (*category.DeletionResult, error) {
	// Re-read the target under lock; a concurrent delete turns this
	// request into a no-op at the service layer.
	target, err := scanCategory(tx.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`,
		plan.CategoryID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to re-read target: %w", err)
	}

	// Re-collect the subtree inside the transaction; the plan's view
	// may be stale.
	childRows, err := tx.Query(ctx,
		`SELECT id FROM categories WHERE parent_id = $1 FOR UPDATE`,
		target.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read children: %w", err)
	}
	var childIDs []uuid.UUID
	for childRows.Next() {
		var id uuid.UUID
		if err := childRows.Scan(&id); err != nil {
			childRows.Close()
			return nil, fmt.Errorf("failed to scan child id: %w", err)
		}
		childIDs = append(childIDs, id)
	}
	childRows.Close()
	if err := childRows.Err(); err != nil {
		return nil, err
	}

	subtreeIDs := append([]uuid.UUID{target.ID}, childIDs...)

	var subIDs []uuid.UUID
	if target.IsRoot() {
		subIDs = childIDs
	} else {
		subIDs = []uuid.UUID{target.ID}
	}

	result := &category.DeletionResult{}

	switch plan.Action {
	case category.ActionNone:
		// Normal delete: products may have appeared since planning.
		var count int64
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM products WHERE category_id = ANY($1) OR subcategory_id = ANY($1)`,
			subtreeIDs,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to re-count products: %w", err)
		}
		if count > 0 {
			return nil, category.ErrCategoryHasProducts
		}

	case category.ActionLifted:
		tag, err := tx.Exec(ctx,
			`UPDATE products SET subcategory_id = NULL, updated_at = NOW() WHERE subcategory_id = ANY($1)`,
			subIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to lift products: %w", err)
		}
		result.LiftedProducts = tag.RowsAffected()

	case category.ActionReassigned:
		reassignTo := plan.ReassignTargetID
		if plan.UseUncategorized {
			placeholder, err := r.EnsureUncategorized(ctx, tx)
			if err != nil {
				return nil, err
			}
			reassignTo = &placeholder.ID
			result.UsedUncategorized = true
		}
		if reassignTo == nil {
			return nil, category.ErrReassignTargetInvalid
		}

		if target.IsRoot() {
			if len(subIDs) > 0 {
				tag, err := tx.Exec(ctx,
					`UPDATE products SET subcategory_id = NULL, updated_at = NOW() WHERE subcategory_id = ANY($1)`,
					subIDs,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to lift subtree products: %w", err)
				}
				result.LiftedProducts = tag.RowsAffected()
			}

			// Deleting an empty placeholder with itself as the implicit
			// target: nothing to move.
			if *reassignTo != target.ID {
				tag, err := tx.Exec(ctx,
					`UPDATE products SET category_id = $1, subcategory_id = NULL, updated_at = NOW() WHERE category_id = ANY($2)`,
					*reassignTo, subtreeIDs,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to reassign products: %w", err)
				}
				result.ReassignedProducts = tag.RowsAffected()
			}
		} else {
			tag, err := tx.Exec(ctx,
				`UPDATE products SET category_id = $1, subcategory_id = NULL, updated_at = NOW() WHERE subcategory_id = ANY($2)`,
				*reassignTo, subIDs,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to reassign products: %w", err)
			}
			result.ReassignedProducts = tag.RowsAffected()
		}

	case category.ActionPurged:
		tag, err := tx.Exec(ctx,
			`DELETE FROM products WHERE category_id = ANY($1) OR subcategory_id = ANY($1)`,
			subtreeIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to purge products: %w", err)
		}
		result.PurgedProducts = tag.RowsAffected()

	default:
		return nil, fmt.Errorf("%w: unknown plan action %q", category.ErrExecutionFailed, plan.Action)
	}

	deleted, err := r.DeleteRows(ctx, tx, subtreeIDs)
	if err != nil {
		return nil, err
	}
	result.DeletedCategoryIDs = deleted

	return result, nil
}

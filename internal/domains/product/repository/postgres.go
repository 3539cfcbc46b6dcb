package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"photobook-backend/internal/domains/product"
	"photobook-backend/pkg/database"
	"photobook-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the product store backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) product.Repository {
	return &postgresRepository{pool: pool}
}

const productColumns = `
	id, name, description, price,
	category_id, subcategory_id, image_url, in_stock,
	created_at, updated_at`

type row interface {
	Scan(dest ...any) error
}

func scanProduct(r row) (*product.Product, error) {
	var p product.Product
	err := r.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.CategoryID, &p.SubcategoryID, &p.ImageURL, &p.InStock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *product.Product) (*product.Product, error) {
	query := `
		INSERT INTO products (
			id, name, description, price,
			category_id, subcategory_id, image_url, in_stock,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns

	created, err := scanProduct(r.pool.QueryRow(ctx, query,
		entity.ID, entity.Name, entity.Description, entity.Price,
		entity.CategoryID, entity.SubcategoryID, entity.ImageURL, entity.InStock,
		entity.CreatedAt, entity.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.ConstraintName == "products_category_id_fkey" ||
				pgErr.ConstraintName == "products_subcategory_id_fkey") {
			return nil, product.ErrInvalidProduct
		}
		logger.Error("product create: database error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]product.Product, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM products
		WHERE $1::uuid IS NULL OR category_id = $1 OR subcategory_id = $1`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE $1::uuid IS NULL OR category_id = $1 OR subcategory_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var items []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		items = append(items, *p)
	}

	return items, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, entity *product.Product) (*product.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4,
			category_id = $5, subcategory_id = $6, image_url = $7,
			in_stock = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query,
		entity.ID, entity.Name, entity.Description, entity.Price,
		entity.CategoryID, entity.SubcategoryID, entity.ImageURL,
		entity.InStock, entity.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		logger.Error("product update: database error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM products
		WHERE category_id = ANY($1) OR subcategory_id = ANY($1)`

	var count int64
	if err := r.pool.QueryRow(ctx, query, categoryIDs).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products by categories: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ListIDsByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id
		FROM products
		WHERE category_id = ANY($1) OR subcategory_id = ANY($1)
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list product ids by categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignToSubcategory replaces the subcategory's membership: products
// currently in it but not in the new list are released first.
func (r *postgresRepository) AssignToSubcategory(ctx context.Context, productIDs []uuid.UUID, categoryID uuid.UUID, subcategoryID *uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		if subcategoryID != nil {
			_, err := tx.Exec(ctx, `
				UPDATE products
				SET subcategory_id = NULL, updated_at = NOW()
				WHERE subcategory_id = $1 AND NOT (id = ANY($2))`,
				*subcategoryID, productIDs,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to release previous members: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET category_id = $2, subcategory_id = $3, updated_at = NOW()
			WHERE id = ANY($1)`,
			productIDs, categoryID, subcategoryID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to assign products: %w", err)
		}
		return tag.RowsAffected(), nil
	})
}

func (r *postgresRepository) CountOrphaned(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM products p
		WHERE NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = p.category_id)
			OR (p.subcategory_id IS NOT NULL
				AND NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = p.subcategory_id))`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orphaned products: %w", err)
	}
	return count, nil
}

package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the product store. CountByCategories and
// ListIDsByCategories also back the category deletion policy through
// the category.ProductIndex interface.
type Repository interface {
	Create(ctx context.Context, entity *Product) (*Product, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List returns products filtered by optional category; a nil
	// categoryID means no filter.
	List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]Product, int64, error)

	Update(ctx context.Context, entity *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCategories counts products referencing any of the given
	// categories through category_id or subcategory_id.
	CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (int64, error)
	// ListIDsByCategories returns the ids of those products.
	ListIDsByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error)

	// AssignToSubcategory bulk-moves products into a category pair,
	// replacing the subcategory's previous membership, and returns how
	// many rows were assigned.
	AssignToSubcategory(ctx context.Context, productIDs []uuid.UUID, categoryID uuid.UUID, subcategoryID *uuid.UUID) (int64, error)

	// CountOrphaned counts products whose category reference points at
	// a missing row. Zero on a healthy catalog.
	CountOrphaned(ctx context.Context) (int64, error)
}

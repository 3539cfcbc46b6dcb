package category

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository is the category store. Row removal never cascades here;
// cascading is the deletion policy's job, executed through ExecutePlan.
type Repository interface {
	Create(ctx context.Context, entity *Category) (*Category, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// ListAll returns every category ordered by sort_order, then
	// creation time.
	ListAll(ctx context.Context) ([]Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	Update(ctx context.Context, entity *Category) (*Category, error)

	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteRows removes category rows inside the caller's transaction.
	// Pure row removal, no cascading.
	DeleteRows(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]uuid.UUID, error)

	// EnsureUncategorized returns the placeholder, creating it inside
	// the caller's transaction when absent.
	EnsureUncategorized(ctx context.Context, tx pgx.Tx) (*Category, error)

	// ExecutePlan runs a validated deletion plan as one transaction:
	// re-validates the subtree, mutates the dependent products and
	// removes the category rows, all-or-nothing. A target deleted by a
	// concurrent request surfaces as ErrCategoryNotFound.
	ExecutePlan(ctx context.Context, plan *DeletionPlan) (*DeletionResult, error)
}

// ProductIndex is the slice of the product repository the deletion
// policy needs: which products depend on a set of categories, either
// through category_id or subcategory_id.
type ProductIndex interface {
	CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (int64, error)
	ListIDsByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error)
}

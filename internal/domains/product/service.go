package product

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateProductReq) (*ProductResp, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductResp, error)
	List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]ProductResp, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductReq) (*ProductResp, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AssignToSubcategory bulk-moves products into a category pair,
	// validating that the subcategory belongs to the category.
	AssignToSubcategory(ctx context.Context, req *AssignToSubcategoryReq) (int64, error)
}

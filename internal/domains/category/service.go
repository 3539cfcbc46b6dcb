package category

import (
	"context"

	"github.com/google/uuid"
)

// Service is the category lifecycle boundary consumed by the HTTP
// handlers and the worker.
type Service interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*CategoryResp, error)

	GetByID(ctx context.Context, id uuid.UUID) (*CategoryResp, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryResp, error)
	List(ctx context.Context) ([]CategoryResp, error)

	// GetTree returns the cached two-level hierarchy view.
	GetTree(ctx context.Context) (*Tree, error)

	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryReq) (*CategoryResp, error)
	MoveToParent(ctx context.Context, id uuid.UUID, req *MoveToParentReq) (*CategoryResp, error)
	Activate(ctx context.Context, id uuid.UUID) (*CategoryResp, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*CategoryResp, error)

	// PlanDeletion validates a deletion request and computes its exact
	// consequences without mutating anything.
	PlanDeletion(ctx context.Context, req DeletionRequest) (*DeletionPlan, error)

	// ExecuteDeletion applies a plan atomically. Re-executing a plan
	// whose target is already gone yields an empty no-op result.
	ExecuteDeletion(ctx context.Context, plan *DeletionPlan) (*DeletionResult, error)

	// Delete is PlanDeletion followed by ExecuteDeletion.
	Delete(ctx context.Context, req DeletionRequest) (*DeletionResult, error)
}

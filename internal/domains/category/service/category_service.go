package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"photobook-backend/internal/domains/category"
	"photobook-backend/pkg/cache"
	"photobook-backend/pkg/logger"
)

const (
	treeCacheKey = "categories:tree"
	treeCacheTTL = 5 * time.Minute
)

type categoryService struct {
	repo     category.Repository
	products category.ProductIndex
	cache    cache.Cache
}

// NewCategoryService wires the category lifecycle: CRUD, the tree view
// and the deletion policy.
func NewCategoryService(repo category.Repository, products category.ProductIndex, c cache.Cache) category.Service {
	return &categoryService{
		repo:     repo,
		products: products,
		cache:    c,
	}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.CategoryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, category.ErrParentNotFound
			}
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, category.ErrMaxDepthExceeded
		}
	}

	entity, err := category.NewCategory(
		req.Name, req.ParentID, req.Description,
		req.ImageURL, req.BannerImage, req.SortOrder,
	)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBySlug(ctx, entity.Slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, category.ErrDuplicateSlug
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	logger.Info("category created", map[string]interface{}{
		"id":   created.ID.String(),
		"slug": created.Slug,
	})

	return category.CategoryToResp(created), nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.CategoryResp, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return category.CategoryToResp(c), nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.CategoryResp, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return category.CategoryToResp(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]category.CategoryResp, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return category.CategoriesToResp(items), nil
}

func (s *categoryService) GetTree(ctx context.Context) (*category.Tree, error) {
	var cached category.Tree
	found, err := s.cache.Get(ctx, treeCacheKey, &cached)
	if err != nil {
		logger.Warn("tree cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tree := category.BuildTree(items)

	if err := s.cache.Set(ctx, treeCacheKey, tree, treeCacheTTL); err != nil {
		logger.Warn("tree cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return &tree, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *category.UpdateCategoryReq) (*category.CategoryResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := entity.Name
	if !req.Name.IsEmpty() {
		name = req.Name
	}
	description := entity.Description
	if req.Description != nil {
		description = req.Description
	}
	imageURL := entity.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	bannerImage := entity.BannerImage
	if req.BannerImage != nil {
		bannerImage = *req.BannerImage
	}
	sortOrder := entity.SortOrder
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	if err := entity.Update(name, description, imageURL, bannerImage, sortOrder); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBySlug(ctx, entity.Slug, &entity.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, category.ErrDuplicateSlug
	}

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return category.CategoryToResp(updated), nil
}

// MoveToParent re-parents a category. The destination must be a root
// (or nil for promotion to root) and the moved node must be childless,
// otherwise the move would create a third level.
func (s *categoryService) MoveToParent(ctx context.Context, id uuid.UUID, req *category.MoveToParentReq) (*category.CategoryResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == entity.ID {
			return nil, category.ErrInvalidParent
		}

		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, category.ErrParentNotFound
			}
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, category.ErrInvalidParent
		}

		hasChildren, err := s.repo.HasChildren(ctx, entity.ID)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, category.ErrMaxDepthExceeded
		}
	}

	entity.ParentID = req.ParentID
	entity.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return category.CategoryToResp(updated), nil
}

func (s *categoryService) Activate(ctx context.Context, id uuid.UUID) (*category.CategoryResp, error) {
	return s.setActive(ctx, id, true)
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) (*category.CategoryResp, error) {
	return s.setActive(ctx, id, false)
}

func (s *categoryService) setActive(ctx context.Context, id uuid.UUID, active bool) (*category.CategoryResp, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.SetActive(active)

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return category.CategoryToResp(updated), nil
}

func (s *categoryService) PlanDeletion(ctx context.Context, req category.DeletionRequest) (*category.DeletionPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	children, err := s.repo.ListChildren(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	subtreeIDs := make([]uuid.UUID, 0, len(children)+1)
	subtreeIDs = append(subtreeIDs, target.ID)
	for _, child := range children {
		subtreeIDs = append(subtreeIDs, child.ID)
	}

	dependents, err := s.products.ListIDsByCategories(ctx, subtreeIDs)
	if err != nil {
		return nil, err
	}

	var reassignTarget *category.Category
	if req.Mode == category.ModeForceReassign && req.ReassignTargetID != nil {
		reassignTarget, err = s.repo.GetByID(ctx, *req.ReassignTargetID)
		if err != nil && !errors.Is(err, category.ErrCategoryNotFound) {
			return nil, err
		}
		// A missing target stays nil; the planner rejects it.
	}

	return category.BuildDeletionPlan(req, *target, children, dependents, reassignTarget)
}

func (s *categoryService) ExecuteDeletion(ctx context.Context, plan *category.DeletionPlan) (*category.DeletionResult, error) {
	result, err := s.repo.ExecutePlan(ctx, plan)
	if err != nil {
		// The target vanished between planning and execution; a retry of
		// an already-applied deletion lands here and stays idempotent.
		if errors.Is(err, category.ErrCategoryNotFound) {
			logger.Info("deletion target already gone", map[string]interface{}{
				"category_id": plan.CategoryID.String(),
			})
			return &category.DeletionResult{}, nil
		}
		return nil, err
	}

	s.invalidateTree(ctx)
	logger.Info("category deleted", map[string]interface{}{
		"category_id": plan.CategoryID.String(),
		"mode":        string(plan.Mode),
		"action":      string(plan.Action),
		"categories":  len(result.DeletedCategoryIDs),
	})

	return result, nil
}

func (s *categoryService) Delete(ctx context.Context, req category.DeletionRequest) (*category.DeletionResult, error) {
	plan, err := s.PlanDeletion(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.ExecuteDeletion(ctx, plan)
}

func (s *categoryService) invalidateTree(ctx context.Context) {
	if err := s.cache.Delete(ctx, treeCacheKey); err != nil {
		logger.Warn("tree cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

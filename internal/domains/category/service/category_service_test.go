package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobook-backend/internal/domains/category"
	"photobook-backend/internal/shared/mltext"
)

// fakeRepo is an in-memory category.Repository for service tests.
type fakeRepo struct {
	categories map[uuid.UUID]*category.Category
	// products maps category/subcategory id to dependent product ids.
	productsByCategory map[uuid.UUID][]uuid.UUID
	executedPlans      []*category.DeletionPlan
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories:         make(map[uuid.UUID]*category.Category),
		productsByCategory: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeRepo) add(c category.Category) {
	cp := c
	f.categories[c.ID] = &cp
}

func (f *fakeRepo) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	f.add(*entity)
	return entity, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]category.Category, error) {
	var out []category.Category
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	if _, ok := f.categories[entity.ID]; !ok {
		return nil, category.ErrCategoryNotFound
	}
	f.add(*entity)
	return entity, nil
}

func (f *fakeRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if c.Slug == slug && (excludeID == nil || c.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) DeleteRows(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]uuid.UUID, error) {
	var deleted []uuid.UUID
	for _, id := range ids {
		if _, ok := f.categories[id]; ok {
			delete(f.categories, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (f *fakeRepo) EnsureUncategorized(ctx context.Context, tx pgx.Tx) (*category.Category, error) {
	if existing, err := f.GetBySlug(ctx, category.UncategorizedSlug); err == nil {
		return existing, nil
	}
	placeholder := category.NewUncategorizedPlaceholder()
	f.add(*placeholder)
	return placeholder, nil
}

func (f *fakeRepo) ExecutePlan(ctx context.Context, plan *category.DeletionPlan) (*category.DeletionResult, error) {
	if _, ok := f.categories[plan.CategoryID]; !ok {
		return nil, category.ErrCategoryNotFound
	}
	f.executedPlans = append(f.executedPlans, plan)

	result := &category.DeletionResult{}
	switch plan.Action {
	case category.ActionLifted:
		result.LiftedProducts = int64(len(plan.AffectedProductIDs))
	case category.ActionReassigned:
		result.ReassignedProducts = int64(len(plan.AffectedProductIDs))
		result.UsedUncategorized = plan.UseUncategorized
	case category.ActionPurged:
		result.PurgedProducts = int64(len(plan.AffectedProductIDs))
	}

	deleted, _ := f.DeleteRows(ctx, nil, plan.DeletedCategoryIDs)
	result.DeletedCategoryIDs = deleted
	return result, nil
}

// fakeProducts implements category.ProductIndex.
type fakeProducts struct {
	repo *fakeRepo
}

func (f *fakeProducts) CountByCategories(ctx context.Context, ids []uuid.UUID) (int64, error) {
	found, err := f.ListIDsByCategories(ctx, ids)
	return int64(len(found)), err
}

func (f *fakeProducts) ListIDsByCategories(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, id := range ids {
		for _, pid := range f.repo.productsByCategory[id] {
			if !seen[pid] {
				seen[pid] = true
				out = append(out, pid)
			}
		}
	}
	return out, nil
}

// fakeCache is an in-memory pkg/cache.Cache.
type fakeCache struct {
	deletes int
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.deletes++
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newTestService(t *testing.T) (category.Service, *fakeRepo, *fakeCache) {
	t.Helper()
	repo := newFakeRepo()
	c := &fakeCache{}
	svc := NewCategoryService(repo, &fakeProducts{repo: repo}, c)
	return svc, repo, c
}

func seedRoot(t *testing.T, repo *fakeRepo, name string) category.Category {
	t.Helper()
	c, err := category.NewCategory(mltext.Text{mltext.LangEN: name}, nil, nil, "", "", 0)
	require.NoError(t, err)
	repo.add(*c)
	return *c
}

func seedSub(t *testing.T, repo *fakeRepo, parent category.Category, name string) category.Category {
	t.Helper()
	c, err := category.NewCategory(mltext.Text{mltext.LangEN: name}, &parent.ID, nil, "", "", 0)
	require.NoError(t, err)
	repo.add(*c)
	return *c
}

func TestCreateRejectsSubcategoryParent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	sub := seedSub(t, repo, root, "Premium")

	_, err := svc.Create(context.Background(), &category.CreateCategoryReq{
		Name:     mltext.Text{mltext.LangEN: "Deep"},
		ParentID: &sub.ID,
	})
	assert.ErrorIs(t, err, category.ErrMaxDepthExceeded)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	svc, _, _ := newTestService(t)
	missing := uuid.New()

	_, err := svc.Create(context.Background(), &category.CreateCategoryReq{
		Name:     mltext.Text{mltext.LangEN: "Orphan"},
		ParentID: &missing,
	})
	assert.ErrorIs(t, err, category.ErrParentNotFound)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedRoot(t, repo, "Photobooks")

	_, err := svc.Create(context.Background(), &category.CreateCategoryReq{
		Name: mltext.Text{mltext.LangEN: "Photobooks"},
	})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)
}

func TestCreateInvalidatesTreeCache(t *testing.T) {
	svc, _, cache := newTestService(t)

	_, err := svc.Create(context.Background(), &category.CreateCategoryReq{
		Name: mltext.Text{mltext.LangEN: "Photobooks"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)
}

func TestMoveToParentDepthChecks(t *testing.T) {
	svc, repo, _ := newTestService(t)
	rootA := seedRoot(t, repo, "Photobooks")
	rootB := seedRoot(t, repo, "Calendars")
	seedSub(t, repo, rootA, "Premium")

	// A root with children cannot become a subcategory.
	_, err := svc.MoveToParent(context.Background(), rootA.ID, &category.MoveToParentReq{ParentID: &rootB.ID})
	assert.ErrorIs(t, err, category.ErrMaxDepthExceeded)

	// A childless root can.
	moved, err := svc.MoveToParent(context.Background(), rootB.ID, &category.MoveToParentReq{ParentID: &rootA.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, rootA.ID, *moved.ParentID)
}

func TestMoveToParentPromotesToRoot(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	sub := seedSub(t, repo, root, "Premium")

	moved, err := svc.MoveToParent(context.Background(), sub.ID, &category.MoveToParentReq{ParentID: nil})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestDeleteNormalRemovesSubtree(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	sub := seedSub(t, repo, root, "Premium")

	result, err := svc.Delete(context.Background(), category.DeletionRequest{
		CategoryID: root.ID,
		Mode:       category.ModeNormal,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{root.ID, sub.ID}, result.DeletedCategoryIDs)
	_, err = svc.GetByID(context.Background(), root.ID)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestDeleteNormalBlockedByProducts(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	repo.productsByCategory[root.ID] = []uuid.UUID{uuid.New()}

	_, err := svc.Delete(context.Background(), category.DeletionRequest{
		CategoryID: root.ID,
		Mode:       category.ModeNormal,
	})
	assert.ErrorIs(t, err, category.ErrCategoryHasProducts)
}

func TestDeleteForceUncategorizedRoot(t *testing.T) {
	svc, repo, cache := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	sub := seedSub(t, repo, root, "Premium")
	repo.productsByCategory[root.ID] = []uuid.UUID{uuid.New(), uuid.New()}
	repo.productsByCategory[sub.ID] = []uuid.UUID{uuid.New()}

	result, err := svc.Delete(context.Background(), category.DeletionRequest{
		CategoryID: root.ID,
		Mode:       category.ModeForceUncategorized,
	})
	require.NoError(t, err)

	assert.True(t, result.UsedUncategorized)
	assert.EqualValues(t, 3, result.ReassignedProducts)
	assert.Equal(t, 1, cache.deletes)
}

func TestExecuteDeletionIdempotentOnMissingTarget(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")

	plan, err := svc.PlanDeletion(context.Background(), category.DeletionRequest{
		CategoryID: root.ID,
		Mode:       category.ModeNormal,
	})
	require.NoError(t, err)

	first, err := svc.ExecuteDeletion(context.Background(), plan)
	require.NoError(t, err)
	assert.NotEmpty(t, first.DeletedCategoryIDs)

	// Re-executing the same plan is a clean no-op.
	second, err := svc.ExecuteDeletion(context.Background(), plan)
	require.NoError(t, err)
	assert.Empty(t, second.DeletedCategoryIDs)
	assert.Zero(t, second.ReassignedProducts)
}

func TestPlanDeletionReassignLoadsTarget(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	other := seedRoot(t, repo, "Calendars")
	repo.productsByCategory[root.ID] = []uuid.UUID{uuid.New()}

	plan, err := svc.PlanDeletion(context.Background(), category.DeletionRequest{
		CategoryID:       root.ID,
		Mode:             category.ModeForceReassign,
		ReassignTargetID: &other.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, plan.ReassignTargetID)
	assert.Equal(t, other.ID, *plan.ReassignTargetID)

	// A vanished target is rejected at planning time.
	missing := uuid.New()
	_, err = svc.PlanDeletion(context.Background(), category.DeletionRequest{
		CategoryID:       root.ID,
		Mode:             category.ModeForceReassign,
		ReassignTargetID: &missing,
	})
	assert.ErrorIs(t, err, category.ErrReassignTargetInvalid)
}

func TestGetTreeBuildsFromRepository(t *testing.T) {
	svc, repo, _ := newTestService(t)
	root := seedRoot(t, repo, "Photobooks")
	seedSub(t, repo, root, "Premium")
	seedSub(t, repo, root, "Mini")

	tree, err := svc.GetTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	assert.Len(t, tree.Roots[0].Children, 2)
}

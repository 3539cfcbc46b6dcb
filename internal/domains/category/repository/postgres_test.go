// Integration tests for the pgx-backed category repository. They need
// a running PostgreSQL instance and skip themselves when none is
// reachable. All objects live in a dedicated photobook_test schema so
// the tests never touch application data.
package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobook-backend/internal/domains/category"
	"photobook-backend/internal/shared/mltext"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "postgres")
	pass := envOr("POSTGRES_PASSWORD", "postgres")
	name := envOr("POSTGRES_DB", "photobook_test")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

const testSchema = `
	DROP SCHEMA IF EXISTS photobook_test CASCADE;
	CREATE SCHEMA photobook_test;

	CREATE TABLE photobook_test.categories (
		id uuid PRIMARY KEY,
		parent_id uuid,
		slug text NOT NULL,
		name jsonb NOT NULL,
		description jsonb NOT NULL DEFAULT '{}',
		image_url text NOT NULL DEFAULT '',
		banner_image text NOT NULL DEFAULT '',
		sort_order integer NOT NULL DEFAULT 0,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL,
		CONSTRAINT categories_slug_key UNIQUE (slug),
		CONSTRAINT categories_parent_id_fkey FOREIGN KEY (parent_id) REFERENCES photobook_test.categories (id)
	);

	CREATE TABLE photobook_test.products (
		id uuid PRIMARY KEY,
		name jsonb NOT NULL,
		description jsonb NOT NULL DEFAULT '{}',
		price numeric(12,2) NOT NULL DEFAULT 0,
		category_id uuid NOT NULL,
		subcategory_id uuid,
		image_url text NOT NULL DEFAULT '',
		in_stock boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT products_category_id_fkey FOREIGN KEY (category_id) REFERENCES photobook_test.categories (id),
		CONSTRAINT products_subcategory_id_fkey FOREIGN KEY (subcategory_id) REFERENCES photobook_test.categories (id)
	)`

var (
	poolOnce sync.Once
	testPool *pgxpool.Pool
	poolErr  error
)

func setupPool() (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(testDSN())
	if err != nil {
		return nil, err
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `SET search_path TO photobook_test`)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, testSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func sharedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	poolOnce.Do(func() { testPool, poolErr = setupPool() })
	if poolErr != nil {
		t.Skipf("skipping: database not available: %v", poolErr)
	}

	_, err := testPool.Exec(context.Background(), `TRUNCATE photobook_test.products, photobook_test.categories CASCADE`)
	require.NoError(t, err)
	return testPool
}

func seedCategory(t *testing.T, repo category.Repository, name string, parentID *uuid.UUID) *category.Category {
	t.Helper()
	entity, err := category.NewCategory(
		mltext.Text{mltext.LangEN: name}, parentID, mltext.Text{}, "", "", 0,
	)
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), entity)
	require.NoError(t, err)
	return created
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, subcategoryID *uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, price, category_id, subcategory_id) VALUES ($1, $2, $3, $4, $5)`,
		id, mltext.Text{mltext.LangEN: "Glossy album"}, "990.00", categoryID, subcategoryID,
	)
	require.NoError(t, err)
	return id
}

func countProductsIn(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID) int64 {
	t.Helper()
	var n int64
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1 OR subcategory_id = $1`,
		categoryID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestExecutePlanLiftsSubcategoryProducts(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	root := seedCategory(t, repo, "Photobooks", nil)
	sub := seedCategory(t, repo, "Premium", &root.ID)
	p1 := seedProduct(t, pool, root.ID, &sub.ID)
	p2 := seedProduct(t, pool, root.ID, &sub.ID)

	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{CategoryID: sub.ID, Mode: category.ModeForceUncategorized},
		*sub, nil, []uuid.UUID{p1, p2}, nil,
	)
	require.NoError(t, err)
	require.Equal(t, category.ActionLifted, plan.Action)

	result, err := repo.ExecutePlan(ctx, plan)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.LiftedProducts)
	assert.Equal(t, []uuid.UUID{sub.ID}, result.DeletedCategoryIDs)

	// The products stay in the root, only the subcategory link is gone.
	var sub1, sub2 *uuid.UUID
	var cat1, cat2 uuid.UUID
	require.NoError(t, pool.QueryRow(ctx, `SELECT category_id, subcategory_id FROM products WHERE id = $1`, p1).Scan(&cat1, &sub1))
	require.NoError(t, pool.QueryRow(ctx, `SELECT category_id, subcategory_id FROM products WHERE id = $1`, p2).Scan(&cat2, &sub2))
	assert.Equal(t, root.ID, cat1)
	assert.Equal(t, root.ID, cat2)
	assert.Nil(t, sub1)
	assert.Nil(t, sub2)

	_, err = repo.GetByID(ctx, sub.ID)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestExecutePlanRootCreatesPlaceholderInTx(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	root := seedCategory(t, repo, "Calendars", nil)
	sub1 := seedCategory(t, repo, "Wall", &root.ID)
	sub2 := seedCategory(t, repo, "Desk", &root.ID)
	inSub1 := seedProduct(t, pool, root.ID, &sub1.ID)
	inSub2 := seedProduct(t, pool, root.ID, &sub2.ID)
	direct := seedProduct(t, pool, root.ID, nil)

	_, err := repo.GetBySlug(ctx, category.UncategorizedSlug)
	require.ErrorIs(t, err, category.ErrCategoryNotFound)

	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{CategoryID: root.ID, Mode: category.ModeForceUncategorized},
		*root, []category.Category{*sub1, *sub2},
		[]uuid.UUID{inSub1, inSub2, direct}, nil,
	)
	require.NoError(t, err)
	require.Equal(t, category.ActionReassigned, plan.Action)
	require.True(t, plan.UseUncategorized)

	result, err := repo.ExecutePlan(ctx, plan)
	require.NoError(t, err)

	// Subcategory members are lifted first, then the whole subtree moves.
	assert.Equal(t, int64(2), result.LiftedProducts)
	assert.Equal(t, int64(3), result.ReassignedProducts)
	assert.True(t, result.UsedUncategorized)
	assert.Len(t, result.DeletedCategoryIDs, 3)

	placeholder, err := repo.GetBySlug(ctx, category.UncategorizedSlug)
	require.NoError(t, err)

	for _, productID := range []uuid.UUID{inSub1, inSub2, direct} {
		var catID uuid.UUID
		var subID *uuid.UUID
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT category_id, subcategory_id FROM products WHERE id = $1`, productID,
		).Scan(&catID, &subID))
		assert.Equal(t, placeholder.ID, catID)
		assert.Nil(t, subID)
	}
}

func TestExecutePlanReassignsToExplicitTarget(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	source := seedCategory(t, repo, "Posters", nil)
	target := seedCategory(t, repo, "Prints", nil)
	productID := seedProduct(t, pool, source.ID, nil)

	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{
			CategoryID:       source.ID,
			Mode:             category.ModeForceReassign,
			ReassignTargetID: &target.ID,
		},
		*source, nil, []uuid.UUID{productID}, target,
	)
	require.NoError(t, err)

	result, err := repo.ExecutePlan(ctx, plan)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ReassignedProducts)
	assert.False(t, result.UsedUncategorized)
	assert.Equal(t, int64(1), countProductsIn(t, pool, target.ID))

	// No placeholder should appear when an explicit target is given.
	_, err = repo.GetBySlug(ctx, category.UncategorizedSlug)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestExecutePlanPurgesProducts(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	root := seedCategory(t, repo, "Magnets", nil)
	sub := seedCategory(t, repo, "Fridge", &root.ID)
	p1 := seedProduct(t, pool, root.ID, &sub.ID)
	p2 := seedProduct(t, pool, root.ID, nil)

	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{CategoryID: root.ID, Mode: category.ModeForcePurge},
		*root, []category.Category{*sub}, []uuid.UUID{p1, p2}, nil,
	)
	require.NoError(t, err)

	result, err := repo.ExecutePlan(ctx, plan)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.PurgedProducts)
	assert.Len(t, result.DeletedCategoryIDs, 2)

	var remaining int64
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestExecutePlanMissingTarget(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	root := seedCategory(t, repo, "Cards", nil)
	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{CategoryID: root.ID, Mode: category.ModeNormal},
		*root, nil, nil, nil,
	)
	require.NoError(t, err)

	// The category disappears between planning and execution.
	_, err = pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, root.ID)
	require.NoError(t, err)

	_, err = repo.ExecutePlan(ctx, plan)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestExecutePlanNormalBlockedByLateProduct(t *testing.T) {
	pool := sharedPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	root := seedCategory(t, repo, "Frames", nil)
	plan, err := category.BuildDeletionPlan(
		category.DeletionRequest{CategoryID: root.ID, Mode: category.ModeNormal},
		*root, nil, nil, nil,
	)
	require.NoError(t, err)
	require.Equal(t, category.ActionNone, plan.Action)

	// A product lands after the plan was made; the in-transaction
	// re-count must reject the stale plan.
	seedProduct(t, pool, root.ID, nil)

	_, err = repo.ExecutePlan(ctx, plan)
	assert.ErrorIs(t, err, category.ErrCategoryHasProducts)

	_, err = repo.GetByID(ctx, root.ID)
	assert.NoError(t, err)
}

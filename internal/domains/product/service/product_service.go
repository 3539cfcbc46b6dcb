package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"photobook-backend/internal/domains/category"
	"photobook-backend/internal/domains/product"
	"photobook-backend/pkg/logger"
)

type productService struct {
	repo       product.Repository
	categories category.Repository
}

// NewProductService wires product CRUD and bulk category assignment.
func NewProductService(repo product.Repository, categories category.Repository) product.Service {
	return &productService{
		repo:       repo,
		categories: categories,
	}
}

// validateCategoryPair checks that the category exists and, when a
// subcategory is given, that it is a direct child of the category.
func (s *productService) validateCategoryPair(ctx context.Context, categoryID uuid.UUID, subcategoryID *uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return product.ErrCategoryMismatch
		}
		return err
	}

	if subcategoryID == nil {
		return nil
	}

	sub, err := s.categories.GetByID(ctx, *subcategoryID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return product.ErrCategoryMismatch
		}
		return err
	}
	if sub.ParentID == nil || *sub.ParentID != categoryID {
		return product.ErrCategoryMismatch
	}

	return nil
}

func (s *productService) Create(ctx context.Context, req *product.CreateProductReq) (*product.ProductResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.validateCategoryPair(ctx, req.CategoryID, req.SubcategoryID); err != nil {
		return nil, err
	}

	entity, err := product.NewProduct(
		req.Name, req.Description, req.Price,
		req.CategoryID, req.SubcategoryID, req.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("product created", map[string]interface{}{
		"id":          created.ID.String(),
		"category_id": created.CategoryID.String(),
	})

	return product.ProductToResp(created), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*product.ProductResp, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.ProductToResp(p), nil
}

func (s *productService) List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]product.ProductResp, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.List(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return product.ProductsToResp(items), total, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *product.UpdateProductReq) (*product.ProductResp, error) {
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
	price := entity.Price
	if req.Price != nil {
		price = *req.Price
	}
	imageURL := entity.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	inStock := entity.InStock
	if req.InStock != nil {
		inStock = *req.InStock
	}

	if err := entity.Update(name, description, price, imageURL, inStock); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, entity)
	if err != nil {
		return nil, err
	}

	return product.ProductToResp(updated), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *productService) AssignToSubcategory(ctx context.Context, req *product.AssignToSubcategoryReq) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	if err := s.validateCategoryPair(ctx, req.CategoryID, req.SubcategoryID); err != nil {
		return 0, err
	}

	moved, err := s.repo.AssignToSubcategory(ctx, req.ProductIDs, req.CategoryID, req.SubcategoryID)
	if err != nil {
		return 0, err
	}

	logger.Info("products reassigned", map[string]interface{}{
		"moved":       moved,
		"category_id": req.CategoryID.String(),
	})

	return moved, nil
}

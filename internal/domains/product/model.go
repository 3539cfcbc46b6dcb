package product

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"photobook-backend/internal/shared/mltext"
)

// Product is a catalog item. Every product belongs to exactly one root
// category; the subcategory reference is optional and must point to a
// child of that root.
type Product struct {
	ID            uuid.UUID
	Name          mltext.Text
	Description   mltext.Text
	Price         decimal.Decimal
	CategoryID    uuid.UUID
	SubcategoryID *uuid.UUID
	ImageURL      string
	InStock       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct validates input and builds a product entity.
func NewProduct(
	name mltext.Text,
	description mltext.Text,
	price decimal.Decimal,
	categoryID uuid.UUID,
	subcategoryID *uuid.UUID,
	imageURL string,
) (*Product, error) {
	if name.IsEmpty() {
		return nil, fmt.Errorf("%w: name must be set in at least one language", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}

	now := time.Now()
	return &Product{
		ID:            uuid.New(),
		Name:          name.Clone(),
		Description:   description.Clone(),
		Price:         price,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		ImageURL:      imageURL,
		InStock:       true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update applies a field change set.
func (p *Product) Update(
	name mltext.Text,
	description mltext.Text,
	price decimal.Decimal,
	imageURL string,
	inStock bool,
) error {
	if name.IsEmpty() {
		return fmt.Errorf("%w: name must be set in at least one language", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	p.Name = name.Clone()
	p.Description = description.Clone()
	p.Price = price
	p.ImageURL = imageURL
	p.InStock = inStock
	p.UpdatedAt = time.Now()

	return nil
}

// AssignCategory moves the product to a new category pair.
func (p *Product) AssignCategory(categoryID uuid.UUID, subcategoryID *uuid.UUID) error {
	if categoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	p.CategoryID = categoryID
	p.SubcategoryID = subcategoryID
	p.UpdatedAt = time.Now()
	return nil
}

package product

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"photobook-backend/internal/shared/mltext"
)

type CreateProductReq struct {
	Name          mltext.Text     `json:"name" binding:"required"`
	Description   mltext.Text     `json:"description" binding:"omitempty"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	SubcategoryID *uuid.UUID      `json:"subcategory_id" binding:"omitempty"`
	ImageURL      string          `json:"image_url" binding:"omitempty"`
}

func (r CreateProductReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(requireTranslatedName)),
		validation.Field(&r.CategoryID,
			validation.Required.Error("category id is required"),
		),
		validation.Field(&r.Price, validation.By(requireNonNegativePrice)),
		validation.Field(&r.ImageURL, validation.Length(0, 2048)),
	)
}

type UpdateProductReq struct {
	Name        mltext.Text      `json:"name" binding:"omitempty"`
	Description mltext.Text      `json:"description" binding:"omitempty"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty"`
	ImageURL    *string          `json:"image_url" binding:"omitempty"`
	InStock     *bool            `json:"in_stock" binding:"omitempty"`
}

func (r UpdateProductReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Price,
			validation.By(func(value interface{}) error {
				v, _ := value.(*decimal.Decimal)
				if v == nil {
					return nil
				}
				return requireNonNegativePrice(*v)
			}),
		),
	)
}

// AssignToSubcategoryReq bulk-moves products into a category pair.
type AssignToSubcategoryReq struct {
	ProductIDs    []uuid.UUID `json:"product_ids" binding:"required"`
	CategoryID    uuid.UUID   `json:"category_id" binding:"required"`
	SubcategoryID *uuid.UUID  `json:"subcategory_id" binding:"omitempty"`
}

func (r AssignToSubcategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductIDs,
			validation.Required.Error("product ids are required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.CategoryID,
			validation.Required.Error("category id is required"),
		),
	)
}

func requireTranslatedName(value interface{}) error {
	name, _ := value.(mltext.Text)
	if name.IsEmpty() {
		return validation.NewError("validation_name_required", "name must be set in at least one language")
	}
	return nil
}

func requireNonNegativePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_price_invalid", "price is invalid")
	}
	if price.IsNegative() {
		return validation.NewError("validation_price_negative", "price must not be negative")
	}
	return nil
}

type ProductResp struct {
	ID            uuid.UUID       `json:"id"`
	Name          mltext.Text     `json:"name"`
	Description   mltext.Text     `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    uuid.UUID       `json:"category_id"`
	SubcategoryID *uuid.UUID      `json:"subcategory_id,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ProductToResp(p *Product) *ProductResp {
	if p == nil {
		return nil
	}
	return &ProductResp{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		ImageURL:      p.ImageURL,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ProductsToResp(products []Product) []ProductResp {
	resps := make([]ProductResp, 0, len(products))
	for i := range products {
		resps = append(resps, *ProductToResp(&products[i]))
	}
	return resps
}

package category

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"photobook-backend/internal/shared/mltext"
)

type CreateCategoryReq struct {
	Name        mltext.Text `json:"name" binding:"required"`
	ParentID    *uuid.UUID  `json:"parent_id" binding:"omitempty"`
	Description mltext.Text `json:"description" binding:"omitempty"`
	ImageURL    string      `json:"image_url" binding:"omitempty"`
	BannerImage string      `json:"banner_image" binding:"omitempty"`
	SortOrder   int         `json:"sort_order" binding:"omitempty,gte=0,lte=999"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.By(requireTranslatedName),
		),
		validation.Field(&r.SortOrder,
			validation.Min(0), validation.Max(999),
		),
		validation.Field(&r.ImageURL, validation.Length(0, 2048)),
		validation.Field(&r.BannerImage, validation.Length(0, 2048)),
	)
}

type UpdateCategoryReq struct {
	Name        mltext.Text `json:"name" binding:"omitempty"`
	Description mltext.Text `json:"description" binding:"omitempty"`
	ImageURL    *string     `json:"image_url" binding:"omitempty"`
	BannerImage *string     `json:"banner_image" binding:"omitempty"`
	SortOrder   *int        `json:"sort_order" binding:"omitempty"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SortOrder,
			validation.By(func(value interface{}) error {
				v, _ := value.(*int)
				if v == nil {
					return nil
				}
				return validation.Validate(*v, validation.Min(0), validation.Max(999))
			}),
		),
	)
}

type MoveToParentReq struct {
	ParentID *uuid.UUID `json:"parent_id" binding:"omitempty"`
}

// DeleteCategoryReq is the wire form of a DeletionRequest; mode and
// target arrive as query parameters on DELETE.
type DeleteCategoryReq struct {
	Mode             string `form:"mode" json:"mode"`
	ReassignTargetID string `form:"target" json:"target"`
}

func requireTranslatedName(value interface{}) error {
	name, _ := value.(mltext.Text)
	if name.IsEmpty() {
		return validation.NewError("validation_name_required", "name must be set in at least one language")
	}
	return nil
}

type CategoryResp struct {
	ID          uuid.UUID   `json:"id"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	Slug        string      `json:"slug"`
	Name        mltext.Text `json:"name"`
	Description mltext.Text `json:"description,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	BannerImage string      `json:"banner_image,omitempty"`
	SortOrder   int         `json:"sort_order"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DeletionPlanResp is the preview shown before a destructive delete.
type DeletionPlanResp struct {
	CategoryID         uuid.UUID   `json:"category_id"`
	Mode               DeleteMode  `json:"mode"`
	Action             PlanAction  `json:"action"`
	DeletedCategoryIDs []uuid.UUID `json:"deleted_category_ids"`
	AffectedProducts   int         `json:"affected_products"`
	ReassignTargetID   *uuid.UUID  `json:"reassign_target_id,omitempty"`
	UseUncategorized   bool        `json:"use_uncategorized"`
}

func CategoryToResp(c *Category) *CategoryResp {
	if c == nil {
		return nil
	}
	return &CategoryResp{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		BannerImage: c.BannerImage,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func CategoriesToResp(categories []Category) []CategoryResp {
	resps := make([]CategoryResp, 0, len(categories))
	for i := range categories {
		resps = append(resps, *CategoryToResp(&categories[i]))
	}
	return resps
}

func PlanToResp(p *DeletionPlan) *DeletionPlanResp {
	if p == nil {
		return nil
	}
	return &DeletionPlanResp{
		CategoryID:         p.CategoryID,
		Mode:               p.Mode,
		Action:             p.Action,
		DeletedCategoryIDs: p.DeletedCategoryIDs,
		AffectedProducts:   len(p.AffectedProductIDs),
		ReassignTargetID:   p.ReassignTargetID,
		UseUncategorized:   p.UseUncategorized,
	}
}

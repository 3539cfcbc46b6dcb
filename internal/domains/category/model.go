package category

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"photobook-backend/internal/shared/mltext"
	"photobook-backend/internal/shared/utils"
)

// UncategorizedSlug identifies the sentinel root category that receives
// products when their category is force-deleted without an explicit
// reassignment target. It is created lazily by the executor.
const UncategorizedSlug = "uncategorized"

// Category is a node of the two-level catalog tree. A nil ParentID
// marks a root category; otherwise the parent must itself be a root
// (depth never exceeds 2).
type Category struct {
	ID          uuid.UUID
	ParentID    *uuid.UUID
	Slug        string
	Name        mltext.Text
	Description mltext.Text
	ImageURL    string
	BannerImage string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory validates input and builds a category entity. The slug is
// derived from the primary-language name.
func NewCategory(
	name mltext.Text,
	parentID *uuid.UUID,
	description mltext.Text,
	imageURL string,
	bannerImage string,
	sortOrder int,
) (*Category, error) {
	if name.IsEmpty() {
		return nil, fmt.Errorf("%w: name must be set in at least one language", ErrInvalidName)
	}

	if len(name.Primary()) > 255 {
		return nil, fmt.Errorf("%w: name must not exceed 255 characters", ErrInvalidName)
	}

	if sortOrder < 0 || sortOrder > 999 {
		return nil, fmt.Errorf("%w: sort_order must be between 0 and 999 (got %d)", ErrInvalidSortOrder, sortOrder)
	}

	slug := utils.GenerateSlug(name.Primary())
	if slug == "" {
		return nil, fmt.Errorf("%w: name does not produce a usable slug", ErrInvalidName)
	}

	now := time.Now()
	return &Category{
		ID:          uuid.New(),
		ParentID:    parentID,
		Slug:        slug,
		Name:        name.Clone(),
		Description: description.Clone(),
		ImageURL:    imageURL,
		BannerImage: bannerImage,
		SortOrder:   sortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewUncategorizedPlaceholder builds the sentinel fallback category.
func NewUncategorizedPlaceholder() *Category {
	now := time.Now()
	return &Category{
		ID:   uuid.New(),
		Slug: UncategorizedSlug,
		Name: mltext.Text{
			mltext.LangRU: "Без категории",
			mltext.LangEN: "Uncategorized",
			mltext.LangHY: "Առանց կատեգորիայի",
		},
		Description: mltext.Text{},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update applies a field change set, regenerating the slug when the
// name changed.
func (c *Category) Update(
	name mltext.Text,
	description mltext.Text,
	imageURL string,
	bannerImage string,
	sortOrder int,
) error {
	if name.IsEmpty() {
		return fmt.Errorf("%w: name must be set in at least one language", ErrInvalidName)
	}

	if sortOrder < 0 || sortOrder > 999 {
		return fmt.Errorf("%w: sort_order must be between 0 and 999 (got %d)", ErrInvalidSortOrder, sortOrder)
	}

	slug := utils.GenerateSlug(name.Primary())
	if slug == "" {
		return fmt.Errorf("%w: name does not produce a usable slug", ErrInvalidName)
	}

	c.Name = name.Clone()
	c.Slug = slug
	c.Description = description.Clone()
	c.ImageURL = imageURL
	c.BannerImage = bannerImage
	c.SortOrder = sortOrder
	c.UpdatedAt = time.Now()

	return nil
}

// SetActive toggles visibility without touching the hierarchy.
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
}

// IsRoot reports whether this is a top-level category.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsUncategorized reports whether this is the sentinel placeholder.
func (c *Category) IsUncategorized() bool {
	return c.Slug == UncategorizedSlug
}

func (c *Category) String() string {
	return fmt.Sprintf(
		"Category{ID: %s, Slug: %s, Root: %v, Active: %v}",
		c.ID, c.Slug, c.IsRoot(), c.IsActive,
	)
}

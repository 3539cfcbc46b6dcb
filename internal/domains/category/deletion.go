package category

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DeleteMode selects what happens to a deleted category's products.
type DeleteMode string

const (
	// ModeNormal deletes the subtree only when no products depend on it.
	ModeNormal DeleteMode = "normal"
	// ModeForceUncategorized lifts subcategory products to their root;
	// when the target is itself a root, its products move to the
	// uncategorized placeholder.
	ModeForceUncategorized DeleteMode = "force_uncategorized"
	// ModeForceReassign moves every dependent product to an explicit
	// root category.
	ModeForceReassign DeleteMode = "force_reassign"
	// ModeForcePurge deletes the dependent products outright.
	ModeForcePurge DeleteMode = "force_purge"
)

// ParseDeleteMode converts the wire value; empty defaults to normal.
func ParseDeleteMode(s string) (DeleteMode, error) {
	switch DeleteMode(s) {
	case "":
		return ModeNormal, nil
	case ModeNormal, ModeForceUncategorized, ModeForceReassign, ModeForcePurge:
		return DeleteMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// DeletionRequest describes a single category deletion. It is ephemeral
// and never persisted.
type DeletionRequest struct {
	CategoryID       uuid.UUID
	Mode             DeleteMode
	ReassignTargetID *uuid.UUID
}

// Validate checks the request's internal consistency. Referential
// checks (target exists, is a root) happen during planning.
func (r DeletionRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID,
			validation.Required.Error("category id is required"),
		),
		validation.Field(&r.Mode,
			validation.Required,
			validation.In(ModeNormal, ModeForceUncategorized, ModeForceReassign, ModeForcePurge).
				Error("mode must be one of normal, force_uncategorized, force_reassign, force_purge"),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}

	if r.Mode == ModeForceReassign && r.ReassignTargetID == nil {
		return ErrReassignTargetRequired
	}
	if r.Mode != ModeForceReassign && r.ReassignTargetID != nil {
		return fmt.Errorf("%w: reassign target is only valid with force_reassign", ErrReassignTargetInvalid)
	}

	return nil
}

// PlanAction names the product mutation a plan will perform.
type PlanAction string

const (
	ActionNone       PlanAction = "none"
	ActionLifted     PlanAction = "lifted"
	ActionReassigned PlanAction = "reassigned"
	ActionPurged     PlanAction = "purged"
)

// DeletionPlan is the side-effect-free outcome of validating a
// DeletionRequest: exactly which categories go away and what happens
// to their products. The executor re-validates it inside its
// transaction before any destructive write.
type DeletionPlan struct {
	CategoryID uuid.UUID
	Mode       DeleteMode
	Action     PlanAction

	// DeletedCategoryIDs holds the target first, then its children.
	DeletedCategoryIDs []uuid.UUID
	// SubcategoryIDs are the subtree members that are subcategories
	// (the target itself when it is one).
	SubcategoryIDs []uuid.UUID
	// AffectedProductIDs are the products the plan will touch.
	AffectedProductIDs []uuid.UUID

	// ReassignTargetID is the resolved explicit target; nil when the
	// executor should fall back to the uncategorized placeholder.
	ReassignTargetID *uuid.UUID
	UseUncategorized bool
	TargetIsRoot     bool
}

// DeletionResult reports what an executed plan changed.
type DeletionResult struct {
	DeletedCategoryIDs []uuid.UUID `json:"deleted_category_ids"`
	ReassignedProducts int64       `json:"reassigned_products"`
	LiftedProducts     int64       `json:"lifted_products"`
	PurgedProducts     int64       `json:"purged_products"`
	UsedUncategorized  bool        `json:"used_uncategorized"`
}

// BuildDeletionPlan is the policy engine. It is pure: the service loads
// the target, its children, the dependent product ids and (for
// force_reassign) the reassign target, and this function decides
// whether the request is allowed and what it will do.
//
// reassignTarget is nil unless the mode is force_reassign and the
// referenced category was found.
func BuildDeletionPlan(
	req DeletionRequest,
	target Category,
	children []Category,
	dependentProductIDs []uuid.UUID,
	reassignTarget *Category,
) (*DeletionPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Subcategories have no children by the depth invariant; a non-empty
	// children list under one is data corruption and planning must not
	// guess what to do with it.
	if !target.IsRoot() && len(children) > 0 {
		return nil, fmt.Errorf("%w: subcategory %s has children", ErrMaxDepthExceeded, target.ID)
	}

	deletedIDs := make([]uuid.UUID, 0, len(children)+1)
	deletedIDs = append(deletedIDs, target.ID)

	var subIDs []uuid.UUID
	if target.IsRoot() {
		for _, child := range children {
			deletedIDs = append(deletedIDs, child.ID)
			subIDs = append(subIDs, child.ID)
		}
	} else {
		subIDs = append(subIDs, target.ID)
	}

	plan := &DeletionPlan{
		CategoryID:         req.CategoryID,
		Mode:               req.Mode,
		DeletedCategoryIDs: deletedIDs,
		SubcategoryIDs:     subIDs,
		AffectedProductIDs: dependentProductIDs,
		TargetIsRoot:       target.IsRoot(),
	}

	// The placeholder is the fallback home for force-deleted products;
	// letting a non-purge delete remove it while it holds products
	// would orphan them.
	if target.IsUncategorized() && req.Mode != ModeForcePurge && len(dependentProductIDs) > 0 {
		return nil, ErrUncategorizedProtected
	}

	switch req.Mode {
	case ModeNormal:
		if len(dependentProductIDs) > 0 {
			return nil, ErrCategoryHasProducts
		}
		plan.Action = ActionNone
		plan.AffectedProductIDs = nil

	case ModeForceUncategorized:
		if target.IsRoot() {
			// Lift subtree subcategory references, then move every
			// dependent product to the placeholder.
			plan.Action = ActionReassigned
			plan.UseUncategorized = true
		} else {
			// Subcategory delete keeps the parent category intact:
			// products only lose their subcategory reference.
			plan.Action = ActionLifted
		}

	case ModeForceReassign:
		if reassignTarget == nil {
			return nil, ErrReassignTargetInvalid
		}
		if reassignTarget.ID == target.ID {
			return nil, ErrReassignTargetInvalid
		}
		if !reassignTarget.IsRoot() {
			return nil, ErrReassignTargetInvalid
		}
		for _, id := range deletedIDs {
			if reassignTarget.ID == id {
				return nil, ErrReassignTargetInvalid
			}
		}
		targetID := reassignTarget.ID
		plan.Action = ActionReassigned
		plan.ReassignTargetID = &targetID

	case ModeForcePurge:
		plan.Action = ActionPurged

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	return plan, nil
}

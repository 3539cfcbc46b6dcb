package category

import (
	"errors"
	"net/http"
)

// Sentinel errors for the category lifecycle. Handlers map them to
// HTTP status codes with HTTPStatus; everything else compares them
// with errors.Is.
var (
	// Not found
	ErrCategoryNotFound = errors.New("category not found")
	ErrParentNotFound   = errors.New("parent category not found")

	// Validation
	ErrInvalidName      = errors.New("invalid category name")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidParent    = errors.New("parent must be a root category")
	ErrMaxDepthExceeded = errors.New("subcategories cannot have children of their own")
	ErrInvalidMode      = errors.New("invalid delete mode")

	ErrReassignTargetRequired = errors.New("reassign target is required for force_reassign")
	ErrReassignTargetInvalid  = errors.New("reassign target must be an existing root category outside the deleted subtree")

	// Conflict
	ErrDuplicateSlug          = errors.New("category slug already exists")
	ErrCategoryHasProducts    = errors.New("category has products; use force delete")
	ErrUncategorizedProtected = errors.New("the uncategorized placeholder still has products; move them first")

	// Execution
	ErrExecutionFailed = errors.New("deletion failed, no changes applied")
)

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrCategoryHasProducts),
		errors.Is(err, ErrUncategorizedProtected):
		return http.StatusConflict
	case errors.Is(err, ErrParentNotFound),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidSortOrder),
		errors.Is(err, ErrInvalidParent),
		errors.Is(err, ErrMaxDepthExceeded),
		errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrReassignTargetRequired),
		errors.Is(err, ErrReassignTargetInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

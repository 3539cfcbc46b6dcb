package product

import (
	"errors"
	"net/http"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrCategoryMismatch = errors.New("subcategory does not belong to the product's category")
)

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidProduct), errors.Is(err, ErrCategoryMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photobook-backend/internal/domains/product"
	"photobook-backend/internal/shared/response"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Product created successfully", resp)
}

// GetByID handles GET /api/v1/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product retrieved successfully", resp)
}

// List handles GET /api/v1/products with optional category, limit and
// offset query parameters.
func (h *ProductHandler) List(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "Invalid category filter", err.Error())
			return
		}
		categoryID = &id
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.List(c.Request.Context(), categoryID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Products retrieved successfully", items, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// Update handles PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req product.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product updated successfully", resp)
}

// Delete handles DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// AssignToSubcategory handles POST /api/v1/admin/products/assign
func (h *ProductHandler) AssignToSubcategory(c *gin.Context) {
	var req product.AssignToSubcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	moved, err := h.service.AssignToSubcategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Products assigned successfully", gin.H{"moved": moved})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	status := product.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.ErrorResponse(c, status, "Internal server error", nil)
		return
	}
	response.ErrorResponse(c, status, err.Error(), nil)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photobook-backend/internal/domains/category"
	"photobook-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /api/v1/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", resp)
}

// GetByID handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", resp)
}

// GetBySlug handles GET /api/v1/categories/slug/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "Slug is required", nil)
		return
	}

	resp, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", resp)
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", resp)
}

// GetTree handles GET /api/v1/categories/tree
func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.service.GetTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category tree retrieved successfully", tree)
}

// Update handles PUT /api/v1/admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", resp)
}

// MoveToParent handles PUT /api/v1/admin/categories/:id/parent
func (h *CategoryHandler) MoveToParent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req category.MoveToParentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.MoveToParent(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category moved successfully", resp)
}

// Activate handles PUT /api/v1/admin/categories/:id/activate
func (h *CategoryHandler) Activate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category activated successfully", resp)
}

// Deactivate handles PUT /api/v1/admin/categories/:id/deactivate
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deactivated successfully", resp)
}

// PlanDeletion handles GET /api/v1/admin/categories/:id/deletion-plan.
// It previews a delete without applying it.
func (h *CategoryHandler) PlanDeletion(c *gin.Context) {
	req, ok := h.bindDeletionRequest(c)
	if !ok {
		return
	}

	plan, err := h.service.PlanDeletion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Deletion plan computed", category.PlanToResp(plan))
}

// Delete handles DELETE /api/v1/admin/categories/:id with optional
// mode and target query parameters.
func (h *CategoryHandler) Delete(c *gin.Context) {
	req, ok := h.bindDeletionRequest(c)
	if !ok {
		return
	}

	result, err := h.service.Delete(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", result)
}

func (h *CategoryHandler) bindDeletionRequest(c *gin.Context) (category.DeletionRequest, bool) {
	var zero category.DeletionRequest

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return zero, false
	}

	var wire category.DeleteCategoryReq
	if err := c.ShouldBindQuery(&wire); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return zero, false
	}

	mode, err := category.ParseDeleteMode(wire.Mode)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid delete mode", err.Error())
		return zero, false
	}

	req := category.DeletionRequest{
		CategoryID: id,
		Mode:       mode,
	}

	if wire.ReassignTargetID != "" {
		target, err := uuid.Parse(wire.ReassignTargetID)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "Invalid reassign target id", err.Error())
			return zero, false
		}
		req.ReassignTargetID = &target
	}

	return req, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	status := category.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.ErrorResponse(c, status, "Internal server error", nil)
		return
	}
	response.ErrorResponse(c, status, err.Error(), nil)
}

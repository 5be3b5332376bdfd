package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
	"github.com/Meghana-05-02/RFP-System/internal/responses"
	"github.com/Meghana-05-02/RFP-System/internal/services"
)

// VendorManager is the service surface the vendor handler depends on.
type VendorManager interface {
	CreateVendor(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error)
	ListVendors(ctx context.Context, name, email string) ([]models.Vendor, error)
	GetVendor(ctx context.Context, id int64) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id int64, req services.UpdateVendorRequest) (*models.Vendor, error)
	DeleteVendor(ctx context.Context, id int64) error
}

type VendorHandler struct {
	vendorService VendorManager
}

func NewVendorHandler(vendorService VendorManager) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// CreateVendor handles POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req services.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			responses.Fail(c, http.StatusConflict, err, "A vendor with this email already exists")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create vendor")
		return
	}

	responses.Success(c, http.StatusCreated, vendor, "Vendor created successfully")
}

// ListVendors handles GET /api/v1/vendors with optional name/email filters.
func (h *VendorHandler) ListVendors(c *gin.Context) {
	vendors, err := h.vendorService.ListVendors(c.Request.Context(), c.Query("name"), c.Query("email"))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve vendors")
		return
	}

	responses.Success(c, http.StatusOK, vendors, "Vendors retrieved successfully")
}

// GetVendor handles GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Vendor not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve vendor")
		return
	}

	responses.Success(c, http.StatusOK, vendor, "Vendor retrieved successfully")
}

// UpdateVendor handles PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVendorNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Vendor not found")
		case errors.Is(err, repositories.ErrDuplicateEmail):
			responses.Fail(c, http.StatusConflict, err, "A vendor with this email already exists")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update vendor")
		}
		return
	}

	responses.Success(c, http.StatusOK, vendor, "Vendor updated successfully")
}

// DeleteVendor handles DELETE /api/v1/vendors/:id
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Vendor not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete vendor")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Vendor deleted successfully")
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid id parameter")
		return 0, false
	}
	return id, true
}

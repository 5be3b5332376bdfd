package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/responses"
	"github.com/Meghana-05-02/RFP-System/internal/services"
)

// RFPManager is the service surface the RFP handler depends on.
type RFPManager interface {
	CreateRFP(ctx context.Context, req services.CreateRFPRequest) (*models.RFP, error)
	ListRFPs(ctx context.Context) ([]models.RFP, error)
	GetRFP(ctx context.Context, id int64) (*models.RFP, error)
	UpdateRFP(ctx context.Context, id int64, req services.UpdateRFPRequest) (*models.RFP, error)
	DeleteRFP(ctx context.Context, id int64) error
	CreateFromText(ctx context.Context, text string) (*models.RFP, *extraction.RFPResult, error)
	SendRFPEmails(ctx context.Context, rfpID int64, vendorIDs []int64) (*services.SendReport, error)
	Comparison(ctx context.Context, rfpID int64) (*services.ComparisonResponse, error)
	Recommend(ctx context.Context, rfpID int64) (*services.RecommendationResponse, error)
}

type RFPHandler struct {
	rfpService RFPManager
}

func NewRFPHandler(rfpService RFPManager) *RFPHandler {
	return &RFPHandler{rfpService: rfpService}
}

// CreateRFP handles POST /api/v1/rfps
func (h *RFPHandler) CreateRFP(c *gin.Context) {
	var req services.CreateRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rfp, err := h.rfpService.CreateRFP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid status")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create RFP")
		return
	}

	responses.Success(c, http.StatusCreated, rfp, "RFP created successfully")
}

// ListRFPs handles GET /api/v1/rfps
func (h *RFPHandler) ListRFPs(c *gin.Context) {
	rfps, err := h.rfpService.ListRFPs(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFPs")
		return
	}

	responses.Success(c, http.StatusOK, rfps, "RFPs retrieved successfully")
}

// GetRFP handles GET /api/v1/rfps/:id
func (h *RFPHandler) GetRFP(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rfp, err := h.rfpService.GetRFP(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRFPNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve RFP")
		return
	}

	responses.Success(c, http.StatusOK, rfp, "RFP retrieved successfully")
}

// UpdateRFP handles PUT /api/v1/rfps/:id
func (h *RFPHandler) UpdateRFP(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rfp, err := h.rfpService.UpdateRFP(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRFPNotFound):
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
		case errors.Is(err, services.ErrInvalidStatus):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid status")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update RFP")
		}
		return
	}

	responses.Success(c, http.StatusOK, rfp, "RFP updated successfully")
}

// DeleteRFP handles DELETE /api/v1/rfps/:id
func (h *RFPHandler) DeleteRFP(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.rfpService.DeleteRFP(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrRFPNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to delete RFP")
		return
	}

	responses.Success(c, http.StatusOK, nil, "RFP deleted successfully")
}

type createFromTextRequest struct {
	Text string `json:"text"`
}

type extractionMetadata struct {
	ExtractedBudget   *float64 `json:"extracted_budget"`
	ExtractedDeadline *string  `json:"extracted_deadline"`
	ItemsCount        int      `json:"items_count"`
}

// CreateFromText handles POST /api/v1/create-from-text. Extraction
// failures come back as 422 with the extraction error so the caller can see
// what the model produced.
func (h *RFPHandler) CreateFromText(c *gin.Context) {
	var req createFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Text field is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Text must be a non-empty string")
		return
	}

	rfp, result, err := h.rfpService.CreateFromText(c.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrEmptyInput):
			responses.Fail(c, http.StatusBadRequest, err, "Text must be a non-empty string")
		case errors.Is(err, services.ErrExtractionFailed):
			var extractionErr error
			if result != nil {
				extractionErr = errors.New(result.Error)
			}
			responses.Fail(c, http.StatusUnprocessableEntity, extractionErr, "Failed to extract RFP data")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to create RFP from text")
		}
		return
	}

	responses.Success(c, http.StatusCreated, gin.H{
		"rfp": rfp,
		"extraction_metadata": extractionMetadata{
			ExtractedBudget:   result.Budget,
			ExtractedDeadline: result.Deadline,
			ItemsCount:        len(result.Items),
		},
	}, "RFP created from text successfully")
}

type sendEmailsRequest struct {
	VendorIDs []int64 `json:"vendor_ids"`
}

// SendRFPEmails handles POST /api/v1/rfps/:id/send-rfp-emails
func (h *RFPHandler) SendRFPEmails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req sendEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if len(req.VendorIDs) == 0 {
		responses.Fail(c, http.StatusBadRequest, nil, "vendor_ids must be a non-empty list")
		return
	}

	report, err := h.rfpService.SendRFPEmails(c.Request.Context(), id, req.VendorIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRFPNotFound):
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
		case errors.Is(err, services.ErrNoVendors):
			responses.Fail(c, http.StatusNotFound, err, "No valid vendors found")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to send RFP emails")
		}
		return
	}

	responses.Success(c, http.StatusOK, report, "RFP emails processed")
}

// Comparison handles GET /api/v1/comparison/:rfp_id
func (h *RFPHandler) Comparison(c *gin.Context) {
	id, ok := parseID(c, "rfp_id")
	if !ok {
		return
	}

	comparison, err := h.rfpService.Comparison(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRFPNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to build comparison")
		return
	}

	responses.Success(c, http.StatusOK, comparison, "Proposal comparison retrieved successfully")
}

// Recommend handles POST /api/v1/ai-recommendation/:rfp_id
func (h *RFPHandler) Recommend(c *gin.Context) {
	id, ok := parseID(c, "rfp_id")
	if !ok {
		return
	}

	recommendation, err := h.rfpService.Recommend(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRFPNotFound):
			responses.Fail(c, http.StatusNotFound, err, "RFP not found")
		case errors.Is(err, services.ErrNoProposals):
			responses.Fail(c, http.StatusNotFound, err, "No proposals found for this RFP")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to generate AI recommendation")
		}
		return
	}

	responses.Success(c, http.StatusOK, recommendation, "AI recommendation generated successfully")
}

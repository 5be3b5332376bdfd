package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
)

var (
	ErrRFPNotFound      = errors.New("rfp not found")
	ErrNoVendors        = errors.New("no valid vendors found with the provided IDs")
	ErrNoProposals      = errors.New("no proposals found for this RFP")
	ErrExtractionFailed = errors.New("failed to extract RFP data")
	ErrInvalidStatus    = errors.New("status must be one of: draft, sent, evaluating")
)

// Mailer sends one plain-text message; implemented by mail.Sender.
type Mailer interface {
	Send(to, subject, body string) error
}

// Extractor is the extraction engine surface the services depend on.
type Extractor interface {
	ExtractRFP(ctx context.Context, text string) (extraction.RFPResult, error)
	ExtractProposal(ctx context.Context, text string) (extraction.ProposalResult, error)
}

type RFPService struct {
	rfpRepo      *repositories.RFPRepository
	vendorRepo   *repositories.VendorRepository
	proposalRepo *repositories.ProposalRepository
	extractor    Extractor
	generator    extraction.Generator
	mailer       Mailer
	logger       *zap.Logger
}

func NewRFPService(
	rfpRepo *repositories.RFPRepository,
	vendorRepo *repositories.VendorRepository,
	proposalRepo *repositories.ProposalRepository,
	extractor Extractor,
	generator extraction.Generator,
	mailer Mailer,
	logger *zap.Logger,
) *RFPService {
	return &RFPService{
		rfpRepo:      rfpRepo,
		vendorRepo:   vendorRepo,
		proposalRepo: proposalRepo,
		extractor:    extractor,
		generator:    generator,
		mailer:       mailer,
		logger:       logger,
	}
}

type RFPItemRequest struct {
	Name           string `json:"name" binding:"required"`
	Quantity       int    `json:"quantity"`
	Specifications string `json:"specifications"`
}

type CreateRFPRequest struct {
	Title                string           `json:"title" binding:"required"`
	NaturalLanguageInput string           `json:"natural_language_input"`
	Budget               *float64         `json:"budget"`
	Status               string           `json:"status"`
	Items                []RFPItemRequest `json:"items"`
}

type UpdateRFPRequest struct {
	Title                string   `json:"title" binding:"required"`
	NaturalLanguageInput string   `json:"natural_language_input"`
	Budget               *float64 `json:"budget"`
	Status               string   `json:"status" binding:"required"`
}

func (s *RFPService) CreateRFP(ctx context.Context, req CreateRFPRequest) (*models.RFP, error) {
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	rfp := &models.RFP{
		Title:                req.Title,
		NaturalLanguageInput: req.NaturalLanguageInput,
		Budget:               req.Budget,
		Status:               req.Status,
	}

	items := make([]models.RFPItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.RFPItem{
			Name:           item.Name,
			Quantity:       clampQuantity(item.Quantity),
			Specifications: item.Specifications,
		})
	}

	if err := s.rfpRepo.CreateWithItems(ctx, rfp, items); err != nil {
		return nil, fmt.Errorf("failed to create rfp: %w", err)
	}

	return rfp, nil
}

func (s *RFPService) ListRFPs(ctx context.Context) ([]models.RFP, error) {
	rfps, err := s.rfpRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rfps: %w", err)
	}
	if rfps == nil {
		rfps = []models.RFP{}
	}
	return rfps, nil
}

func (s *RFPService) GetRFP(ctx context.Context, id int64) (*models.RFP, error) {
	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return nil, ErrRFPNotFound
	}
	return rfp, nil
}

func (s *RFPService) UpdateRFP(ctx context.Context, id int64, req UpdateRFPRequest) (*models.RFP, error) {
	if !models.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return nil, ErrRFPNotFound
	}

	rfp.Title = req.Title
	rfp.NaturalLanguageInput = req.NaturalLanguageInput
	rfp.Budget = req.Budget
	rfp.Status = req.Status

	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, fmt.Errorf("failed to update rfp: %w", err)
	}

	return rfp, nil
}

func (s *RFPService) DeleteRFP(ctx context.Context, id int64) error {
	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return ErrRFPNotFound
	}

	return s.rfpRepo.Delete(ctx, id)
}

// CreateFromText runs RFP extraction on free text and persists the RFP with
// its items in one transaction. On an extraction envelope failure the result
// is returned alongside ErrExtractionFailed so the handler can surface the
// extraction error; a contract violation (empty text) comes back as
// extraction.ErrEmptyInput.
func (s *RFPService) CreateFromText(ctx context.Context, text string) (*models.RFP, *extraction.RFPResult, error) {
	result, err := s.extractor.ExtractRFP(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	if !result.Success {
		s.logger.Warn("rfp extraction failed", zap.String("error", result.Error))
		return nil, &result, ErrExtractionFailed
	}

	rfp := &models.RFP{
		Title:                result.Title,
		NaturalLanguageInput: text,
		Budget:               result.Budget,
		Status:               models.StatusDraft,
	}

	items := make([]models.RFPItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, models.RFPItem{
			Name:           item.Name,
			Quantity:       clampQuantity(item.Quantity),
			Specifications: item.Specifications,
		})
	}

	if err := s.rfpRepo.CreateWithItems(ctx, rfp, items); err != nil {
		return nil, &result, fmt.Errorf("failed to persist rfp: %w", err)
	}

	s.logger.Info("rfp created from text",
		zap.Int64("rfp_id", rfp.ID),
		zap.Int("items", len(items)),
	)

	return rfp, &result, nil
}

type FailedVendor struct {
	VendorID   int64  `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	Error      string `json:"error"`
}

type SendReport struct {
	RFPID         int64          `json:"rfp_id"`
	RFPTitle      string         `json:"rfp_title"`
	EmailsSent    int            `json:"emails_sent"`
	TotalVendors  int            `json:"total_vendors"`
	RFPStatus     string         `json:"rfp_status"`
	FailedVendors []FailedVendor `json:"failed_vendors,omitempty"`
}

// SendRFPEmails mails the RFP invitation to each vendor, best effort.
// Failures are collected per vendor; if at least one send succeeded the RFP
// advances to "sent".
func (s *RFPService) SendRFPEmails(ctx context.Context, rfpID int64, vendorIDs []int64) (*SendReport, error) {
	rfp, err := s.rfpRepo.GetByID(ctx, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return nil, ErrRFPNotFound
	}

	vendors, err := s.vendorRepo.GetByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}
	if len(vendors) == 0 {
		return nil, ErrNoVendors
	}

	subject := "RFP Invitation: " + rfp.Title
	body := buildInvitationBody(rfp)

	report := &SendReport{
		RFPID:        rfp.ID,
		RFPTitle:     rfp.Title,
		TotalVendors: len(vendorIDs),
		RFPStatus:    rfp.Status,
	}

	for _, vendor := range vendors {
		if err := s.mailer.Send(vendor.Email, subject, body); err != nil {
			s.logger.Warn("invitation send failed",
				zap.Int64("vendor_id", vendor.ID),
				zap.String("vendor_email", vendor.Email),
				zap.Error(err),
			)
			report.FailedVendors = append(report.FailedVendors, FailedVendor{
				VendorID:   vendor.ID,
				VendorName: vendor.Name,
				Error:      err.Error(),
			})
			continue
		}
		report.EmailsSent++
	}

	if report.EmailsSent > 0 {
		if err := s.rfpRepo.UpdateStatus(ctx, rfp.ID, models.StatusSent); err != nil {
			return nil, fmt.Errorf("failed to update rfp status: %w", err)
		}
		report.RFPStatus = models.StatusSent
	}

	return report, nil
}

type ComparisonResponse struct {
	RFP           *models.RFP                 `json:"rfp"`
	Proposals     []models.ProposalWithVendor `json:"proposals"`
	ProposalCount int                         `json:"proposal_count"`
}

// Comparison returns the RFP with all its proposals side by side. Stored raw
// email text is truncated for display.
func (s *RFPService) Comparison(ctx context.Context, rfpID int64) (*ComparisonResponse, error) {
	rfp, err := s.rfpRepo.GetByID(ctx, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return nil, ErrRFPNotFound
	}

	proposals, err := s.proposalRepo.ListByRFP(ctx, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	if proposals == nil {
		proposals = []models.ProposalWithVendor{}
	}

	for i := range proposals {
		proposals[i].RawEmailContent = truncate(proposals[i].RawEmailContent, 200)
	}

	return &ComparisonResponse{
		RFP:           rfp,
		Proposals:     proposals,
		ProposalCount: len(proposals),
	}, nil
}

type RecommendationResponse struct {
	Recommendation    string `json:"recommendation"`
	RFPID             int64  `json:"rfp_id"`
	ProposalsAnalyzed int    `json:"proposals_analyzed"`
}

// Recommend builds a comparison prompt over all proposals of the RFP and
// returns the model's free-text recommendation verbatim.
func (s *RFPService) Recommend(ctx context.Context, rfpID int64) (*RecommendationResponse, error) {
	rfp, err := s.rfpRepo.GetByID(ctx, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}
	if rfp == nil {
		return nil, ErrRFPNotFound
	}

	proposals, err := s.proposalRepo.ListByRFP(ctx, rfpID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	if len(proposals) == 0 {
		return nil, ErrNoProposals
	}

	prompt := buildRecommendationPrompt(rfp, proposals)

	recommendation, err := s.generator.Generate(ctx, prompt, extraction.GenerateOptions{
		Temperature:     0.3,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate AI recommendation: %w", err)
	}

	return &RecommendationResponse{
		Recommendation:    recommendation,
		RFPID:             rfpID,
		ProposalsAnalyzed: len(proposals),
	}, nil
}

func buildInvitationBody(rfp *models.RFP) string {
	var b strings.Builder

	b.WriteString("Dear Vendor,\n\n")
	b.WriteString("You are invited to submit a proposal for the following Request for Proposal (RFP):\n\n")
	fmt.Fprintf(&b, "RFP Title: %s\n", rfp.Title)
	fmt.Fprintf(&b, "RFP ID: #%d\n", rfp.ID)
	fmt.Fprintf(&b, "Budget: %s\n\n", formatBudget(rfp.Budget))
	b.WriteString("Requirements:\n")
	b.WriteString(rfp.NaturalLanguageInput)
	b.WriteString("\n\nItems Requested:\n")

	for i, item := range rfp.Items {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		if item.Specifications != "" {
			fmt.Fprintf(&b, "   Specifications: %s\n", item.Specifications)
		}
	}

	b.WriteString("\nPlease submit your proposal at your earliest convenience.\n\n")
	b.WriteString("Best regards,\nRFP Management System\n")

	return b.String()
}

func buildRecommendationPrompt(rfp *models.RFP, proposals []models.ProposalWithVendor) string {
	var b strings.Builder

	b.WriteString("You are an expert procurement advisor. Analyze the following RFP and vendor proposals ")
	b.WriteString("to recommend which vendor should be chosen and why.\n\n")
	fmt.Fprintf(&b, "RFP: %s\n", rfp.Title)
	fmt.Fprintf(&b, "Budget: %s\n", formatBudget(rfp.Budget))
	fmt.Fprintf(&b, "Requirements: %s\n\n", rfp.NaturalLanguageInput)
	b.WriteString("Vendor Proposals:\n")

	for i, p := range proposals {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.VendorName)
		fmt.Fprintf(&b, "   - Total Price: %s\n", formatBudget(p.Price))
		fmt.Fprintf(&b, "   - Payment Terms: %s\n", orNotSpecified(p.PaymentTerms))
		fmt.Fprintf(&b, "   - Warranty: %s\n", orNotSpecified(p.Warranty))
	}

	b.WriteString("\nProvide a clear recommendation on which vendor to choose and explain your reasoning. ")
	b.WriteString("Consider price, payment terms, warranty, and overall value. ")
	b.WriteString("Keep your response concise and professional.")

	return b.String()
}

func formatBudget(v *float64) string {
	if v == nil {
		return "Not specified"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

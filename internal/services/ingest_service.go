package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/mail"
	"github.com/Meghana-05-02/RFP-System/internal/models"
)

// The slices of the repositories the ingest flow touches.
type vendorLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

type rfpLookup interface {
	GetByID(ctx context.Context, id int64) (*models.RFP, error)
	GetByTitle(ctx context.Context, title string) (*models.RFP, error)
}

type proposalWriter interface {
	Upsert(ctx context.Context, proposal *models.Proposal) error
}

// IngestService turns an inbound vendor email into a proposal row. Messages
// that cannot be matched to a vendor and an RFP, or whose extraction fails,
// are skipped with a reason rather than treated as errors.
type IngestService struct {
	vendorRepo   vendorLookup
	rfpRepo      rfpLookup
	proposalRepo proposalWriter
	extractor    Extractor
	logger       *zap.Logger
}

func NewIngestService(
	vendorRepo vendorLookup,
	rfpRepo rfpLookup,
	proposalRepo proposalWriter,
	extractor Extractor,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		vendorRepo:   vendorRepo,
		rfpRepo:      rfpRepo,
		proposalRepo: proposalRepo,
		extractor:    extractor,
		logger:       logger,
	}
}

// IngestOutcome reports what happened to one message. Skipped and Created
// are mutually exclusive; Reason is set only on skips.
type IngestOutcome struct {
	Created    bool
	Skipped    bool
	Reason     string
	ProposalID int64
}

func skip(reason string) IngestOutcome {
	return IngestOutcome{Skipped: true, Reason: reason}
}

// ProcessMessage resolves the sending vendor and the referenced RFP, runs
// proposal extraction on the body, and upserts the proposal. The returned
// error is reserved for storage failures; everything else is a skip.
func (s *IngestService) ProcessMessage(ctx context.Context, msg mail.Message) (IngestOutcome, error) {
	vendor, err := s.vendorRepo.GetByEmail(ctx, msg.FromAddress)
	if err != nil {
		return IngestOutcome{}, fmt.Errorf("failed to look up vendor: %w", err)
	}
	if vendor == nil {
		return skip(fmt.Sprintf("vendor not found with email: %s", msg.FromAddress)), nil
	}

	rfp, reason, err := s.resolveRFP(ctx, msg.Subject)
	if err != nil {
		return IngestOutcome{}, err
	}
	if rfp == nil {
		return skip(reason), nil
	}

	result, err := s.extractor.ExtractProposal(ctx, msg.Body)
	if err != nil {
		// An empty body is the extractor's contract violation; for
		// ingestion it is just another unusable message.
		if errors.Is(err, extraction.ErrEmptyInput) {
			return skip("empty email body"), nil
		}
		return IngestOutcome{}, fmt.Errorf("proposal extraction failed: %w", err)
	}
	if !result.Success {
		return skip("extraction failed: " + result.Error), nil
	}

	proposal := &models.Proposal{
		RFPID:           rfp.ID,
		VendorID:        vendor.ID,
		RawEmailContent: msg.Body,
		Price:           result.Price,
		PaymentTerms:    derefOrEmpty(result.PaymentTerms),
		Warranty:        derefOrEmpty(result.Warranty),
	}

	if err := s.proposalRepo.Upsert(ctx, proposal); err != nil {
		return IngestOutcome{}, fmt.Errorf("failed to upsert proposal: %w", err)
	}

	s.logger.Info("proposal ingested",
		zap.Int64("proposal_id", proposal.ID),
		zap.Int64("rfp_id", rfp.ID),
		zap.Int64("vendor_id", vendor.ID),
	)

	return IngestOutcome{Created: true, ProposalID: proposal.ID}, nil
}

var (
	rfpNumberRe   = regexp.MustCompile(`(?i)RFP\s*#(\d+)`)
	rfpIDRe       = regexp.MustCompile(`(?i)RFP\s+ID\s*:\s*#?(\d+)`)
	replyPrefixRe = regexp.MustCompile(`(?i)^(Re|Fwd?|Fw):\s*`)
	invitationRe  = regexp.MustCompile(`(?i)RFP\s+Invitation:\s*(.+)`)
)

// ParseSubject extracts an RFP reference from a mail subject: an explicit
// id when the subject carries "RFP #<n>" or "RFP ID: <n>", otherwise the
// title from an "RFP Invitation: <title>" pattern after stripping reply and
// forward prefixes. Returns (0, "") when the subject carries neither.
func ParseSubject(subject string) (int64, string) {
	if m := rfpNumberRe.FindStringSubmatch(subject); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return id, ""
		}
	}

	if m := rfpIDRe.FindStringSubmatch(subject); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return id, ""
		}
	}

	clean := strings.TrimSpace(replyPrefixRe.ReplaceAllString(subject, ""))
	if m := invitationRe.FindStringSubmatch(clean); m != nil {
		return 0, strings.TrimSpace(m[1])
	}

	return 0, ""
}

func (s *IngestService) resolveRFP(ctx context.Context, subject string) (*models.RFP, string, error) {
	id, title := ParseSubject(subject)

	if id != 0 {
		rfp, err := s.rfpRepo.GetByID(ctx, id)
		if err != nil {
			return nil, "", fmt.Errorf("failed to look up rfp %d: %w", id, err)
		}
		if rfp == nil {
			return nil, fmt.Sprintf("rfp not found with id: %d", id), nil
		}
		return rfp, "", nil
	}

	if title != "" {
		rfp, err := s.rfpRepo.GetByTitle(ctx, title)
		if err != nil {
			return nil, "", fmt.Errorf("failed to look up rfp by title: %w", err)
		}
		if rfp == nil {
			return nil, fmt.Sprintf("rfp not found with title: %s", title), nil
		}
		return rfp, "", nil
	}

	return nil, fmt.Sprintf("could not resolve RFP from subject: %s", subject), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

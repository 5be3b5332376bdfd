package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/mail"
	"github.com/Meghana-05-02/RFP-System/internal/models"
)

type stubVendorLookup struct {
	vendors map[string]*models.Vendor
}

func (s *stubVendorLookup) GetByEmail(_ context.Context, email string) (*models.Vendor, error) {
	return s.vendors[strings.ToLower(email)], nil
}

type stubRFPLookup struct {
	byID    map[int64]*models.RFP
	byTitle map[string]*models.RFP
}

func (s *stubRFPLookup) GetByID(_ context.Context, id int64) (*models.RFP, error) {
	return s.byID[id], nil
}

func (s *stubRFPLookup) GetByTitle(_ context.Context, title string) (*models.RFP, error) {
	return s.byTitle[strings.ToLower(title)], nil
}

type stubProposalWriter struct {
	calls    int
	upserted *models.Proposal
	err      error
}

func (s *stubProposalWriter) Upsert(_ context.Context, proposal *models.Proposal) error {
	s.calls++
	s.upserted = proposal
	proposal.ID = 11
	return s.err
}

type stubExtractor struct {
	result extraction.ProposalResult
	err    error
}

func (s *stubExtractor) ExtractRFP(_ context.Context, _ string) (extraction.RFPResult, error) {
	panic("not implemented")
}

func (s *stubExtractor) ExtractProposal(_ context.Context, _ string) (extraction.ProposalResult, error) {
	return s.result, s.err
}

func newTestIngestService(extractor Extractor, writer *stubProposalWriter) *IngestService {
	vendors := &stubVendorLookup{vendors: map[string]*models.Vendor{
		"sales@dell.com": {ID: 2, Name: "Dell Technologies", Email: "sales@dell.com"},
	}}
	rfps := &stubRFPLookup{
		byID:    map[int64]*models.RFP{3: {ID: 3, Title: "Laptops"}},
		byTitle: map[string]*models.RFP{"laptop procurement": {ID: 4, Title: "Laptop Procurement"}},
	}
	return NewIngestService(vendors, rfps, writer, extractor, zap.NewNop())
}

func proposalMessage(subject, body string) mail.Message {
	return mail.Message{
		SeqNum:      1,
		Subject:     subject,
		FromAddress: "sales@dell.com",
		Body:        body,
	}
}

func TestProcessMessageStoresProposal(t *testing.T) {
	price := 68500.00
	terms := "Net 30"
	extractor := &stubExtractor{result: extraction.ProposalResult{
		Success:      true,
		Price:        &price,
		PaymentTerms: &terms,
	}}
	writer := &stubProposalWriter{}
	svc := newTestIngestService(extractor, writer)

	outcome, err := svc.ProcessMessage(context.Background(), proposalMessage("Re: RFP #3", "We offer $68,500."))
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !outcome.Created || outcome.Skipped {
		t.Fatalf("outcome = %+v, want Created", outcome)
	}
	if outcome.ProposalID != 11 {
		t.Errorf("ProposalID = %d", outcome.ProposalID)
	}

	if writer.calls != 1 {
		t.Fatalf("Upsert called %d times, want 1", writer.calls)
	}
	p := writer.upserted
	if p.RFPID != 3 || p.VendorID != 2 || p.RawEmailContent != "We offer $68,500." {
		t.Errorf("upserted = %+v", p)
	}
	if p.Price == nil || *p.Price != price || p.PaymentTerms != "Net 30" || p.Warranty != "" {
		t.Errorf("extracted fields = %+v", p)
	}
}

func TestProcessMessageResolvesRFPByInvitationTitle(t *testing.T) {
	extractor := &stubExtractor{result: extraction.ProposalResult{Success: true}}
	writer := &stubProposalWriter{}
	svc := newTestIngestService(extractor, writer)

	outcome, err := svc.ProcessMessage(context.Background(),
		proposalMessage("Re: RFP Invitation: Laptop Procurement", "offer"))
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !outcome.Created {
		t.Fatalf("outcome = %+v, want Created", outcome)
	}
	if writer.upserted.RFPID != 4 {
		t.Errorf("RFPID = %d, want the title-matched rfp", writer.upserted.RFPID)
	}
}

func TestProcessMessageSkips(t *testing.T) {
	tests := []struct {
		name       string
		msg        mail.Message
		extractor  *stubExtractor
		wantReason string
	}{
		{
			name:       "unknown vendor",
			msg:        mail.Message{Subject: "Re: RFP #3", FromAddress: "stranger@example.com", Body: "offer"},
			extractor:  &stubExtractor{result: extraction.ProposalResult{Success: true}},
			wantReason: "vendor not found with email: stranger@example.com",
		},
		{
			name:       "unresolvable subject",
			msg:        proposalMessage("Our best offer", "offer"),
			extractor:  &stubExtractor{result: extraction.ProposalResult{Success: true}},
			wantReason: "could not resolve RFP from subject: Our best offer",
		},
		{
			name:       "rfp id not found",
			msg:        proposalMessage("Re: RFP #99", "offer"),
			extractor:  &stubExtractor{result: extraction.ProposalResult{Success: true}},
			wantReason: "rfp not found with id: 99",
		},
		{
			name:       "rfp title not found",
			msg:        proposalMessage("RFP Invitation: Unknown Project", "offer"),
			extractor:  &stubExtractor{result: extraction.ProposalResult{Success: true}},
			wantReason: "rfp not found with title: Unknown Project",
		},
		{
			name:       "empty body",
			msg:        proposalMessage("Re: RFP #3", ""),
			extractor:  &stubExtractor{err: extraction.ErrEmptyInput},
			wantReason: "empty email body",
		},
		{
			name:       "extraction envelope failure",
			msg:        proposalMessage("Re: RFP #3", "garbled"),
			extractor:  &stubExtractor{result: extraction.ProposalResult{Error: "empty response from model"}},
			wantReason: "extraction failed: empty response from model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &stubProposalWriter{}
			svc := newTestIngestService(tt.extractor, writer)

			outcome, err := svc.ProcessMessage(context.Background(), tt.msg)
			if err != nil {
				t.Fatalf("ProcessMessage: %v", err)
			}
			if !outcome.Skipped || outcome.Created {
				t.Fatalf("outcome = %+v, want Skipped", outcome)
			}
			if outcome.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", outcome.Reason, tt.wantReason)
			}
			if writer.calls != 0 {
				t.Errorf("Upsert called %d times on a skip", writer.calls)
			}
		})
	}
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		subject   string
		wantID    int64
		wantTitle string
	}{
		{"RFP #123", 123, ""},
		{"Re: RFP #123 - Our Proposal", 123, ""},
		{"Proposal for RFP ID: 5", 5, ""},
		{"Proposal for RFP ID: #7", 7, ""},
		{"rfp #42", 42, ""},
		{"RFP Invitation: Office Laptop Procurement 2025", 0, "Office Laptop Procurement 2025"},
		{"Re: RFP Invitation: Laptop Procurement", 0, "Laptop Procurement"},
		{"Fwd: RFP Invitation: Laptop Procurement", 0, "Laptop Procurement"},
		{"Fw: RFP Invitation: Laptop Procurement", 0, "Laptop Procurement"},
		{"Our best offer", 0, ""},
		{"", 0, ""},
		{"RFP # without a number", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			id, title := ParseSubject(tt.subject)
			if id != tt.wantID || title != tt.wantTitle {
				t.Errorf("ParseSubject(%q) = (%d, %q), want (%d, %q)",
					tt.subject, id, title, tt.wantID, tt.wantTitle)
			}
		})
	}
}

func TestParseSubjectPrefersExplicitID(t *testing.T) {
	// An explicit id beats the invitation title when both are present.
	id, title := ParseSubject("Re: RFP Invitation: Laptops (RFP #9)")
	if id != 9 || title != "" {
		t.Errorf("got (%d, %q), want (9, \"\")", id, title)
	}
}

package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Meghana-05-02/RFP-System/internal/models"
)

func TestBuildInvitationBody(t *testing.T) {
	budget := 150000.00
	rfp := &models.RFP{
		ID:                   7,
		Title:                "Office Laptop Procurement 2025",
		NaturalLanguageInput: "We need laptops for the team.",
		Budget:               &budget,
		Items: []models.RFPItem{
			{Name: "Developer Laptops", Quantity: 25, Specifications: "16GB RAM"},
			{Name: "Docks", Quantity: 25},
		},
	}

	body := buildInvitationBody(rfp)

	for _, want := range []string{
		"Dear Vendor,",
		"RFP Title: Office Laptop Procurement 2025",
		"RFP ID: #7",
		"Budget: $150000.00",
		"We need laptops for the team.",
		"1. Developer Laptops",
		"Quantity: 25",
		"Specifications: 16GB RAM",
		"2. Docks",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("invitation body missing %q:\n%s", want, body)
		}
	}
}

func TestBuildInvitationBodyNoBudget(t *testing.T) {
	rfp := &models.RFP{ID: 1, Title: "T"}
	body := buildInvitationBody(rfp)
	if !strings.Contains(body, "Budget: Not specified") {
		t.Errorf("body should say the budget is not specified:\n%s", body)
	}
}

func TestBuildRecommendationPrompt(t *testing.T) {
	budget := 150000.00
	price := 68500.00
	rfp := &models.RFP{ID: 1, Title: "Laptops", NaturalLanguageInput: "requirements", Budget: &budget}
	proposals := []models.ProposalWithVendor{
		{
			Proposal:   models.Proposal{Price: &price, PaymentTerms: "Net 30"},
			VendorName: "Dell Technologies",
		},
		{
			Proposal:   models.Proposal{},
			VendorName: "HP Inc.",
		},
	}

	prompt := buildRecommendationPrompt(rfp, proposals)

	for _, want := range []string{
		"expert procurement advisor",
		"RFP: Laptops",
		"Budget: $150000.00",
		"1. Dell Technologies",
		"Total Price: $68500.00",
		"Payment Terms: Net 30",
		"Warranty: Not specified",
		"2. HP Inc.",
		"Total Price: Not specified",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("a", 250)
	got := truncate(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long) len = %d, suffix = %q", len(got), got[len(got)-3:])
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	// "é" is two bytes; a cut at byte 200 would land mid-rune.
	s := strings.Repeat("a", 199) + "é" + strings.Repeat("b", 50)

	got := truncate(s, 200)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 199)+"..." {
		t.Errorf("got %q, want the cut moved back to the rune boundary", got)
	}
}

func TestClampQuantity(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 50: 50} {
		if got := clampQuantity(in); got != want {
			t.Errorf("clampQuantity(%d) = %d, want %d", in, got, want)
		}
	}
}

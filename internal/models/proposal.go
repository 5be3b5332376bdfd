package models

import "time"

// Proposal is a vendor's quoted response to an RFP. At most one proposal
// exists per (rfp_id, vendor_id), enforced by a unique constraint.
type Proposal struct {
	ID              int64     `json:"id"`
	RFPID           int64     `json:"rfp_id"`
	VendorID        int64     `json:"vendor_id"`
	RawEmailContent string    `json:"raw_email_content"`
	Price           *float64  `json:"price"`
	PaymentTerms    string    `json:"payment_terms"`
	Warranty        string    `json:"warranty"`
	SubmittedAt     time.Time `json:"submitted_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProposalWithVendor carries the vendor columns the comparison view needs
// without an extra round trip per proposal.
type ProposalWithVendor struct {
	Proposal
	VendorName    string `json:"vendor_name"`
	VendorEmail   string `json:"vendor_email"`
	VendorContact string `json:"vendor_contact"`
}

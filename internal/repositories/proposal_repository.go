package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Meghana-05-02/RFP-System/internal/models"
)

type ProposalRepository struct {
	pool *pgxpool.Pool
}

func NewProposalRepository(pool *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{pool: pool}
}

// Upsert creates the proposal for (rfp_id, vendor_id) or updates it in place.
// A single conditional write guarded by the unique constraint, so two
// concurrent runs for the same pair cannot produce a duplicate row. A nil
// price on re-submission keeps the previously stored price; everything else
// reflects the latest mail.
func (r *ProposalRepository) Upsert(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (rfp_id, vendor_id, raw_email_content, price, payment_terms, warranty)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT proposals_rfp_vendor_key DO UPDATE SET
			raw_email_content = EXCLUDED.raw_email_content,
			price = COALESCE(EXCLUDED.price, proposals.price),
			payment_terms = EXCLUDED.payment_terms,
			warranty = EXCLUDED.warranty,
			updated_at = NOW()
		RETURNING id, submitted_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		proposal.RFPID,
		proposal.VendorID,
		proposal.RawEmailContent,
		proposal.Price,
		proposal.PaymentTerms,
		proposal.Warranty,
	).Scan(&proposal.ID, &proposal.SubmittedAt, &proposal.UpdatedAt)
}

func (r *ProposalRepository) GetByRFPAndVendor(ctx context.Context, rfpID, vendorID int64) (*models.Proposal, error) {
	query := `
		SELECT id, rfp_id, vendor_id, raw_email_content, price, payment_terms, warranty, submitted_at, updated_at
		FROM proposals WHERE rfp_id = $1 AND vendor_id = $2
	`

	var proposal models.Proposal
	err := r.pool.QueryRow(ctx, query, rfpID, vendorID).Scan(
		&proposal.ID,
		&proposal.RFPID,
		&proposal.VendorID,
		&proposal.RawEmailContent,
		&proposal.Price,
		&proposal.PaymentTerms,
		&proposal.Warranty,
		&proposal.SubmittedAt,
		&proposal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &proposal, nil
}

// ListByRFP returns all proposals for an RFP with the vendor columns joined
// in, newest submission first.
func (r *ProposalRepository) ListByRFP(ctx context.Context, rfpID int64) ([]models.ProposalWithVendor, error) {
	query := `
		SELECT p.id, p.rfp_id, p.vendor_id, p.raw_email_content, p.price, p.payment_terms,
		       p.warranty, p.submitted_at, p.updated_at,
		       v.name, v.email, v.contact_person
		FROM proposals p
		JOIN vendors v ON v.id = p.vendor_id
		WHERE p.rfp_id = $1
		ORDER BY p.submitted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, rfpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.ProposalWithVendor
	for rows.Next() {
		var p models.ProposalWithVendor
		err := rows.Scan(
			&p.ID,
			&p.RFPID,
			&p.VendorID,
			&p.RawEmailContent,
			&p.Price,
			&p.PaymentTerms,
			&p.Warranty,
			&p.SubmittedAt,
			&p.UpdatedAt,
			&p.VendorName,
			&p.VendorEmail,
			&p.VendorContact,
		)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}

func (r *ProposalRepository) CountByRFP(ctx context.Context, rfpID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM proposals WHERE rfp_id = $1`, rfpID).Scan(&count)
	return count, err
}

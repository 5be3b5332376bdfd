package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createVendorsTable,
		createRFPsTable,
		createRFPItemsTable,
		createProposalsTable,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d/%d failed: %w", i+1, len(migrations), err)
		}
	}

	return nil
}

const createVendorsTable = `
CREATE TABLE IF NOT EXISTS vendors (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  contact_person TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Vendor lookup from inbound mail is case-insensitive on the address.
CREATE UNIQUE INDEX IF NOT EXISTS idx_vendors_email_lower ON vendors (LOWER(email));
CREATE INDEX IF NOT EXISTS idx_vendors_name ON vendors(name);
`

const createRFPsTable = `
CREATE TABLE IF NOT EXISTS rfps (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  natural_language_input TEXT NOT NULL DEFAULT '',
  budget NUMERIC(12,2),
  status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'sent', 'evaluating')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_rfps_status ON rfps(status);
CREATE INDEX IF NOT EXISTS idx_rfps_created_at ON rfps(created_at);
`

const createRFPItemsTable = `
CREATE TABLE IF NOT EXISTS rfp_items (
  id BIGSERIAL PRIMARY KEY,
  rfp_id BIGINT NOT NULL REFERENCES rfps(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  quantity INT NOT NULL DEFAULT 1 CHECK (quantity > 0),
  specifications TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_rfp_items_rfp_id ON rfp_items(rfp_id);
`

const createProposalsTable = `
CREATE TABLE IF NOT EXISTS proposals (
  id BIGSERIAL PRIMARY KEY,
  rfp_id BIGINT NOT NULL REFERENCES rfps(id) ON DELETE CASCADE,
  vendor_id BIGINT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
  raw_email_content TEXT NOT NULL DEFAULT '',
  price NUMERIC(12,2),
  payment_terms TEXT NOT NULL DEFAULT '',
  warranty TEXT NOT NULL DEFAULT '',
  submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT proposals_rfp_vendor_key UNIQUE (rfp_id, vendor_id)
);

CREATE INDEX IF NOT EXISTS idx_proposals_rfp_id ON proposals(rfp_id);
CREATE INDEX IF NOT EXISTS idx_proposals_vendor_id ON proposals(vendor_id);
`

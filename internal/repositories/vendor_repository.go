package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Meghana-05-02/RFP-System/internal/models"
)

var ErrDuplicateEmail = errors.New("a vendor with this email already exists")

type VendorRepository struct {
	pool *pgxpool.Pool
}

func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	vendor.Prepare()

	query := `
		INSERT INTO vendors (name, email, contact_person)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		vendor.Name,
		vendor.Email,
		vendor.ContactPerson,
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}

	return err
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*models.Vendor, error) {
	query := `
		SELECT id, name, email, contact_person, created_at, updated_at
		FROM vendors WHERE id = $1
	`

	var vendor models.Vendor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Email,
		&vendor.ContactPerson,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &vendor, nil
}

// GetByEmail matches the address case-insensitively. Returns nil, nil when
// no vendor has the address.
func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	query := `
		SELECT id, name, email, contact_person, created_at, updated_at
		FROM vendors WHERE LOWER(email) = LOWER($1)
	`

	var vendor models.Vendor
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Email,
		&vendor.ContactPerson,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &vendor, nil
}

func (r *VendorRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Vendor, error) {
	query := `
		SELECT id, name, email, contact_person, created_at, updated_at
		FROM vendors WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVendors(rows)
}

// List returns vendors optionally filtered by name/email substring,
// case-insensitively.
func (r *VendorRepository) List(ctx context.Context, name, email string) ([]models.Vendor, error) {
	query := `
		SELECT id, name, email, contact_person, created_at, updated_at
		FROM vendors
	`

	var conds []string
	var args []any
	if name != "" {
		args = append(args, "%"+name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if email != "" {
		args = append(args, "%"+email+"%")
		conds = append(conds, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVendors(rows)
}

func (r *VendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	vendor.Prepare()

	query := `
		UPDATE vendors SET
			name = $2, email = $3, contact_person = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.Email,
		vendor.ContactPerson,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("vendor not found")
	}

	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM vendors WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("vendor not found")
	}

	return nil
}

func scanVendors(rows pgx.Rows) ([]models.Vendor, error) {
	var vendors []models.Vendor
	for rows.Next() {
		var vendor models.Vendor
		err := rows.Scan(
			&vendor.ID,
			&vendor.Name,
			&vendor.Email,
			&vendor.ContactPerson,
			&vendor.CreatedAt,
			&vendor.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

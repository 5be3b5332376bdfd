package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Meghana-05-02/RFP-System/internal/models"
)

type RFPRepository struct {
	pool *pgxpool.Pool
}

func NewRFPRepository(pool *pgxpool.Pool) *RFPRepository {
	return &RFPRepository{pool: pool}
}

func (r *RFPRepository) Create(ctx context.Context, rfp *models.RFP) error {
	rfp.Prepare()

	query := `
		INSERT INTO rfps (title, natural_language_input, budget, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		rfp.Title,
		rfp.NaturalLanguageInput,
		rfp.Budget,
		rfp.Status,
	).Scan(&rfp.ID, &rfp.CreatedAt, &rfp.UpdatedAt)
}

// CreateWithItems persists the RFP and all its items in a single transaction.
// Partial writes are never observable: if any item insert fails the RFP row
// is rolled back with it.
func (r *RFPRepository) CreateWithItems(ctx context.Context, rfp *models.RFP, items []models.RFPItem) error {
	rfp.Prepare()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rfps (title, natural_language_input, budget, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		rfp.Title,
		rfp.NaturalLanguageInput,
		rfp.Budget,
		rfp.Status,
	).Scan(&rfp.ID, &rfp.CreatedAt, &rfp.UpdatedAt)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO rfp_items (rfp_id, name, quantity, specifications)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	rfp.Items = make([]models.RFPItem, 0, len(items))
	for _, item := range items {
		item.RFPID = rfp.ID
		err := tx.QueryRow(ctx, itemQuery,
			item.RFPID,
			item.Name,
			item.Quantity,
			item.Specifications,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return err
		}
		rfp.Items = append(rfp.Items, item)
	}

	return tx.Commit(ctx)
}

func (r *RFPRepository) GetByID(ctx context.Context, id int64) (*models.RFP, error) {
	query := `
		SELECT id, title, natural_language_input, budget, status, created_at, updated_at
		FROM rfps WHERE id = $1
	`

	var rfp models.RFP
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rfp.ID,
		&rfp.Title,
		&rfp.NaturalLanguageInput,
		&rfp.Budget,
		&rfp.Status,
		&rfp.CreatedAt,
		&rfp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.getItems(ctx, []int64{rfp.ID})
	if err != nil {
		return nil, err
	}
	rfp.Items = items[rfp.ID]
	if rfp.Items == nil {
		rfp.Items = []models.RFPItem{}
	}

	return &rfp, nil
}

// GetByTitle matches the title case-insensitively, used to resolve the RFP
// referenced by an "RFP Invitation: <title>" mail subject.
func (r *RFPRepository) GetByTitle(ctx context.Context, title string) (*models.RFP, error) {
	query := `
		SELECT id, title, natural_language_input, budget, status, created_at, updated_at
		FROM rfps WHERE LOWER(title) = LOWER($1)
		ORDER BY id LIMIT 1
	`

	var rfp models.RFP
	err := r.pool.QueryRow(ctx, query, title).Scan(
		&rfp.ID,
		&rfp.Title,
		&rfp.NaturalLanguageInput,
		&rfp.Budget,
		&rfp.Status,
		&rfp.CreatedAt,
		&rfp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &rfp, nil
}

func (r *RFPRepository) List(ctx context.Context) ([]models.RFP, error) {
	query := `
		SELECT id, title, natural_language_input, budget, status, created_at, updated_at
		FROM rfps
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfps []models.RFP
	var ids []int64
	for rows.Next() {
		var rfp models.RFP
		err := rows.Scan(
			&rfp.ID,
			&rfp.Title,
			&rfp.NaturalLanguageInput,
			&rfp.Budget,
			&rfp.Status,
			&rfp.CreatedAt,
			&rfp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, rfp)
		ids = append(ids, rfp.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range rfps {
		rfps[i].Items = items[rfps[i].ID]
		if rfps[i].Items == nil {
			rfps[i].Items = []models.RFPItem{}
		}
	}

	return rfps, nil
}

func (r *RFPRepository) Update(ctx context.Context, rfp *models.RFP) error {
	query := `
		UPDATE rfps SET
			title = $2, natural_language_input = $3, budget = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		rfp.ID,
		rfp.Title,
		rfp.NaturalLanguageInput,
		rfp.Budget,
		rfp.Status,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("rfp not found")
	}

	return nil
}

func (r *RFPRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE rfps SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("rfp not found")
	}

	return nil
}

// Delete removes the RFP; items and proposals go with it via ON DELETE CASCADE.
func (r *RFPRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM rfps WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("rfp not found")
	}

	return nil
}

func (r *RFPRepository) getItems(ctx context.Context, rfpIDs []int64) (map[int64][]models.RFPItem, error) {
	if len(rfpIDs) == 0 {
		return map[int64][]models.RFPItem{}, nil
	}

	query := `
		SELECT id, rfp_id, name, quantity, specifications, created_at, updated_at
		FROM rfp_items WHERE rfp_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, rfpIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]models.RFPItem)
	for rows.Next() {
		var item models.RFPItem
		err := rows.Scan(
			&item.ID,
			&item.RFPID,
			&item.Name,
			&item.Quantity,
			&item.Specifications,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items[item.RFPID] = append(items[item.RFPID], item)
	}

	return items, rows.Err()
}

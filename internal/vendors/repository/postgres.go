package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/vendors"
	"github.com/rasoihq/kitchen-service/internal/vendors/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertQuoteQuery = `
    INSERT INTO vendor_quotes (id, vendor_id, item_name, price, unit, updated_at)
    VALUES (:id, :vendor_id, :item_name, :price, :unit, :updated_at)
`

func (r *PGRepository) Create(ctx context.Context, v *model.Vendor) error {
	query := `
        INSERT INTO vendors (id, name, contact_name, phone, email, address, is_active, created_at, updated_at)
        VALUES (:id, :name, :contact_name, :phone, :email, :address, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Vendor, error) {
	var v model.Vendor
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM vendors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachQuotes(ctx, []*model.Vendor{&v}); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.VendorFilters) ([]model.Vendor, int, error) {
	whereClause := ""
	if f.ActiveOnly {
		whereClause = " WHERE is_active = TRUE"
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM vendors"+whereClause); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM vendors" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	var vendors []model.Vendor
	if err := r.DB.SelectContext(ctx, &vendors, query); err != nil {
		return nil, 0, err
	}

	refs := make([]*model.Vendor, len(vendors))
	for i := range vendors {
		refs[i] = &vendors[i]
	}
	if err := r.attachQuotes(ctx, refs); err != nil {
		return nil, 0, err
	}
	return vendors, count, nil
}

func (r *PGRepository) Update(ctx context.Context, v *model.Vendor) error {
	query := `
        UPDATE vendors
        SET name = :name, contact_name = :contact_name, phone = :phone,
            email = :email, address = :address, is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	return err
}

func (r *PGRepository) ReplaceQuotes(ctx context.Context, vendorID string, quotes []model.VendorQuote) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vendor_quotes WHERE vendor_id = $1`, vendorID); err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}
	for i := range quotes {
		if _, err := tx.NamedExecContext(ctx, insertQuoteQuery, &quotes[i]); err != nil {
			return fmt.Errorf("failed to insert quote: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) QuotesForItem(ctx context.Context, itemName string) ([]vendor.MarketQuote, error) {
	var quotes []vendor.MarketQuote
	query := `
        SELECT q.vendor_id, v.name AS vendor_name, q.price, q.unit
        FROM vendor_quotes q
        JOIN vendors v ON v.id = q.vendor_id
        WHERE lower(trim(q.item_name)) = lower(trim($1)) AND v.is_active = TRUE
        ORDER BY q.price ASC
    `
	err := r.DB.SelectContext(ctx, &quotes, query, itemName)
	return quotes, err
}

func (r *PGRepository) attachQuotes(ctx context.Context, vendors []*model.Vendor) error {
	if len(vendors) == 0 {
		return nil
	}

	ids := make([]string, len(vendors))
	byID := make(map[string]*model.Vendor, len(vendors))
	for i, v := range vendors {
		ids[i] = v.ID
		byID[v.ID] = v
	}

	query, args, err := sqlx.In(`SELECT * FROM vendor_quotes WHERE vendor_id IN (?) ORDER BY item_name`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var quotes []model.VendorQuote
	if err := r.DB.SelectContext(ctx, &quotes, query, args...); err != nil {
		return err
	}

	for _, q := range quotes {
		v := byID[q.VendorID]
		v.Quotes = append(v.Quotes, q)
	}
	return nil
}

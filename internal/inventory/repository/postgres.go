package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rasoihq/kitchen-service/internal/inventory/dto"
	"github.com/rasoihq/kitchen-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertItemQuery = `
    INSERT INTO inventory_items (
        id, name, brand, category, unit,
        quantity, reserved, reorder_level, last_price, status,
        last_restocked, created_at, updated_at
    )
    VALUES (
        :id, :name, :brand, :category, :unit,
        :quantity, :reserved, :reorder_level, :last_price, :status,
        :last_restocked, :created_at, :updated_at
    )
`

const updateItemQuery = `
    UPDATE inventory_items
    SET name = :name, brand = :brand, category = :category, unit = :unit,
        quantity = :quantity, reserved = :reserved, reorder_level = :reorder_level,
        last_price = :last_price, status = :status, last_restocked = :last_restocked,
        updated_at = :updated_at
    WHERE id = :id
`

const insertMovementQuery = `
    INSERT INTO inventory_movements (
        id, item_id, movement_type, quantity_change, quantity_before,
        quantity_after, reference_type, reference_id, notes, created_by, created_at
    )
    VALUES (
        :id, :item_id, :movement_type, :quantity_change, :quantity_before,
        :quantity_after, :reference_type, :reference_id, :notes, :created_by, :created_at
    )
`

func (r *PGRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	_, err := r.DB.NamedExecContext(ctx, insertItemQuery, item)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindByNameBrand(ctx context.Context, name, brand string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `
        SELECT * FROM inventory_items
        WHERE lower(trim(name)) = lower(trim($1)) AND lower(trim(brand)) = lower(trim($2))
    `
	err := r.DB.GetContext(ctx, &item, query, name, brand)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	var items []model.InventoryItem
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= reorder_level AND reorder_level > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_items" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY created_at ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) ListAll(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.DB.SelectContext(ctx, &items, `SELECT * FROM inventory_items ORDER BY created_at ASC`)
	return items, err
}

func (r *PGRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	_, err := r.DB.NamedExecContext(ctx, updateItemQuery, item)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	return err
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	_, err := r.DB.NamedExecContext(ctx, insertMovementQuery, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var movements []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &movements, args)
	return movements, count, err
}

// AdjustStockWithMovement updates the item and logs the movement in one
// transaction so stock changes stay explainable.
func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, item *model.InventoryItem, movement *model.InventoryMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, updateItemQuery, item); err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

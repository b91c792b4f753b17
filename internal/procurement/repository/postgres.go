package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/procurement"
	"github.com/rasoihq/kitchen-service/internal/procurement/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertOrderItemQuery = `
    INSERT INTO purchase_order_items (id, order_id, ingredient_name, brand, quantity, unit, price_at_order)
    VALUES (:id, :order_id, :ingredient_name, :brand, :quantity, :unit, :price_at_order)
`

const updateItemQuery = `
    UPDATE inventory_items
    SET quantity = :quantity, last_price = :last_price, status = :status,
        last_restocked = :last_restocked, updated_at = :updated_at
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

func (r *PGRepository) CreateRequest(ctx context.Context, req *model.ProcurementRequest) error {
	query := `
        INSERT INTO procurement_requests (
            id, ingredient_name, brand, unit, required_qty,
            current_stock, shortage_qty, required_by, created_at
        )
        VALUES (
            :id, :ingredient_name, :brand, :unit, :required_qty,
            :current_stock, :shortage_qty, :required_by, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, req)
	return err
}

func (r *PGRepository) FindRequestByID(ctx context.Context, id string) (*model.ProcurementRequest, error) {
	var req model.ProcurementRequest
	err := r.DB.GetContext(ctx, &req, `SELECT * FROM procurement_requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *PGRepository) ListRequests(ctx context.Context) ([]model.ProcurementRequest, error) {
	var requests []model.ProcurementRequest
	err := r.DB.SelectContext(ctx, &requests, `SELECT * FROM procurement_requests ORDER BY created_at DESC`)
	return requests, err
}

func (r *PGRepository) DeleteRequest(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM procurement_requests WHERE id = $1`, id)
	return err
}

func (r *PGRepository) FindOrderByID(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.DB.GetContext(ctx, &order, `SELECT * FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachItems(ctx, []*model.PurchaseOrder{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) ListOrders(ctx context.Context, f *dto.OrderFilters) ([]model.PurchaseOrder, int, error) {
	var orders []model.PurchaseOrder
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM purchase_orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM purchase_orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, 0, err
	}

	refs := make([]*model.PurchaseOrder, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

type poConfig struct {
	Prefix  string `json:"prefix"`
	NextSeq int    `json:"next_seq"`
}

// FinalizeOrder creates the order and clears its sourcing requests in one
// transaction, taking the order number from the po_config settings row. The
// FOR UPDATE read serializes concurrent finalizations on the sequence.
func (r *PGRepository) FinalizeOrder(ctx context.Context, order *model.PurchaseOrder, requestIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.GetContext(ctx, &raw, `SELECT value FROM settings WHERE key = 'po_config' FOR UPDATE`)
	cfg := poConfig{Prefix: "PO", NextSeq: 1}
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("malformed po_config: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		// seeded by migration; tolerate a wiped settings table
	default:
		return err
	}

	order.OrderNumber = fmt.Sprintf("%s-%04d", cfg.Prefix, cfg.NextSeq)
	cfg.NextSeq++

	next, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
        INSERT INTO settings (key, value, updated_at) VALUES ('po_config', $1, now())
        ON CONFLICT (key) DO UPDATE SET value = $1, updated_at = now()
    `, next)
	if err != nil {
		return fmt.Errorf("failed to advance order sequence: %w", err)
	}

	insertOrder := `
        INSERT INTO purchase_orders (
            id, order_number, vendor_id, vendor_name, status,
            total_cost, expected_delivery, received_at, created_at, updated_at
        )
        VALUES (
            :id, :order_number, :vendor_id, :vendor_name, :status,
            :total_cost, :expected_delivery, :received_at, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertOrder, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	for i := range order.Items {
		if _, err := tx.NamedExecContext(ctx, insertOrderItemQuery, &order.Items[i]); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if len(requestIDs) > 0 {
		query, args, err := sqlx.In(`DELETE FROM procurement_requests WHERE id IN (?)`, requestIDs)
		if err != nil {
			return err
		}
		query = r.DB.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear sourcing requests: %w", err)
		}
	}

	return tx.Commit()
}

// ReceiveOrderWithRestock flips the order to received and applies the
// prepared restocks. The conditional status update guards double receipt.
func (r *PGRepository) ReceiveOrderWithRestock(ctx context.Context, order *model.PurchaseOrder, items []model.InventoryItem, movements []model.InventoryMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
        UPDATE purchase_orders
        SET status = :status, received_at = :received_at, updated_at = :updated_at
        WHERE id = :id AND status = 'pending'
    `, order)
	if err != nil {
		return fmt.Errorf("failed to mark order received: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return procurement.ErrAlreadyReceived
	}

	for i := range items {
		if _, err := tx.NamedExecContext(ctx, updateItemQuery, &items[i]); err != nil {
			return fmt.Errorf("failed to restock item %s: %w", items[i].ID, err)
		}
	}
	for i := range movements {
		if _, err := tx.NamedExecContext(ctx, insertMovementQuery, &movements[i]); err != nil {
			return fmt.Errorf("failed to log movement: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) attachItems(ctx context.Context, orders []*model.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*model.PurchaseOrder, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
		byID[order.ID] = order
	}

	query, args, err := sqlx.In(`SELECT * FROM purchase_order_items WHERE order_id IN (?) ORDER BY ingredient_name`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var items []model.PurchaseOrderItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return err
	}

	for _, item := range items {
		order := byID[item.OrderID]
		order.Items = append(order.Items, item)
	}
	return nil
}

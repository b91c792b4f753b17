package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/plan"
	"github.com/rasoihq/kitchen-service/internal/plan/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const updateItemQuery = `
    UPDATE inventory_items
    SET quantity = :quantity, status = :status, updated_at = :updated_at
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

func (r *PGRepository) Create(ctx context.Context, p *model.ProductionPlan) error {
	query := `
        INSERT INTO production_plans (id, plan_date, meals, headcounts, is_approved, is_consumed, created_at, updated_at)
        VALUES (:id, :plan_date, :meals, :headcounts, :is_approved, :is_consumed, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.ProductionPlan, error) {
	var p model.ProductionPlan
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM production_plans WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PlanFilters) ([]model.ProductionPlan, int, error) {
	var plans []model.ProductionPlan
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.From != "" {
		conditions = append(conditions, "plan_date >= :from")
		args["from"] = f.From
	}
	if f.To != "" {
		conditions = append(conditions, "plan_date <= :to")
		args["to"] = f.To
	}
	if f.Approved != nil {
		conditions = append(conditions, "is_approved = :is_approved")
		args["is_approved"] = *f.Approved
	}
	if f.Consumed != nil {
		conditions = append(conditions, "is_consumed = :is_consumed")
		args["is_consumed"] = *f.Consumed
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM production_plans" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM production_plans" + whereClause + " ORDER BY plan_date DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &plans, args)
	return plans, count, err
}

func (r *PGRepository) ListOpen(ctx context.Context) ([]model.ProductionPlan, error) {
	var plans []model.ProductionPlan
	query := `
        SELECT * FROM production_plans
        WHERE is_approved = TRUE AND is_consumed = FALSE
        ORDER BY plan_date ASC
    `
	err := r.DB.SelectContext(ctx, &plans, query)
	return plans, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.ProductionPlan) error {
	query := `
        UPDATE production_plans
        SET plan_date = :plan_date, meals = :meals, headcounts = :headcounts,
            is_approved = :is_approved, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM production_plans WHERE id = $1`, id)
	return err
}

// ConsumeWithDeductions marks the plan consumed and applies the prepared item
// rows and movements atomically. The conditional update on is_consumed is the
// last line of defense against double deduction.
func (r *PGRepository) ConsumeWithDeductions(ctx context.Context, p *model.ProductionPlan, items []model.InventoryItem, movements []model.InventoryMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
        UPDATE production_plans
        SET is_consumed = TRUE, updated_at = :updated_at
        WHERE id = :id AND is_consumed = FALSE
    `, p)
	if err != nil {
		return fmt.Errorf("failed to mark plan consumed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return plan.ErrAlreadyConsumed
	}

	for i := range items {
		if _, err := tx.NamedExecContext(ctx, updateItemQuery, &items[i]); err != nil {
			return fmt.Errorf("failed to deduct item %s: %w", items[i].ID, err)
		}
	}
	for i := range movements {
		if _, err := tx.NamedExecContext(ctx, insertMovementQuery, &movements[i]); err != nil {
			return fmt.Errorf("failed to log movement: %w", err)
		}
	}

	return tx.Commit()
}

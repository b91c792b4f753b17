package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/recipe/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertIngredientQuery = `
    INSERT INTO recipe_ingredients (
        id, recipe_id, name, amount, unit, inventory_item_id, conversion_factor
    )
    VALUES (:id, :recipe_id, :name, :amount, :unit, :inventory_item_id, :conversion_factor)
`

func (r *PGRepository) Create(ctx context.Context, rec *model.Recipe) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO recipes (id, name, created_at, updated_at)
        VALUES (:id, :name, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	for i := range rec.Ingredients {
		if _, err := tx.NamedExecContext(ctx, insertIngredientQuery, &rec.Ingredients[i]); err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) Update(ctx context.Context, rec *model.Recipe) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE recipes SET name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	for i := range rec.Ingredients {
		if _, err := tx.NamedExecContext(ctx, insertIngredientQuery, &rec.Ingredients[i]); err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.DB.GetContext(ctx, &rec, `SELECT * FROM recipes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachIngredients(ctx, []*model.Recipe{&rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.DB.GetContext(ctx, &rec, `SELECT * FROM recipes WHERE lower(trim(name)) = lower(trim($1))`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachIngredients(ctx, []*model.Recipe{&rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RecipeFilters) ([]model.Recipe, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM recipes`); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM recipes ORDER BY name ASC`
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	var recipes []model.Recipe
	if err := r.DB.SelectContext(ctx, &recipes, query); err != nil {
		return nil, 0, err
	}

	refs := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		refs[i] = &recipes[i]
	}
	if err := r.attachIngredients(ctx, refs); err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func (r *PGRepository) ListAll(ctx context.Context) ([]model.Recipe, error) {
	recipes, _, err := r.FindAll(ctx, &dto.RecipeFilters{})
	return recipes, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return err
}

func (r *PGRepository) attachIngredients(ctx context.Context, recipes []*model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]string, len(recipes))
	byID := make(map[string]*model.Recipe, len(recipes))
	for i, rec := range recipes {
		ids[i] = rec.ID
		byID[rec.ID] = rec
	}

	query, args, err := sqlx.In(`SELECT * FROM recipe_ingredients WHERE recipe_id IN (?) ORDER BY name`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var ingredients []model.Ingredient
	if err := r.DB.SelectContext(ctx, &ingredients, query, args...); err != nil {
		return err
	}

	for _, ing := range ingredients {
		rec := byID[ing.RecipeID]
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	return nil
}

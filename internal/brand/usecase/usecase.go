package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rasoihq/kitchen-service/internal/brand"
	"github.com/rasoihq/kitchen-service/internal/brand/dto"
	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

type brandUseCase struct {
	repo     brand.Repository
	notifier events.Notifier
	logger   logger.ZapLogger
}

func NewBrandUseCase(repo brand.Repository, notifier events.Notifier, log logger.ZapLogger) brand.UseCase {
	return &brandUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *brandUseCase) CreateBrand(ctx context.Context, input *dto.CreateBrandInput) (*model.Brand, error) {
	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("brand already exists")
	}

	now := time.Now()
	b := &model.Brand{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		IsActive:  true,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionBrands, stream.ActionCreated, b.ID)
	return b, nil
}

func (uc *brandUseCase) GetBrand(ctx context.Context, id string) (*model.Brand, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *brandUseCase) ListBrands(ctx context.Context, filters *dto.BrandFilters) ([]model.Brand, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *brandUseCase) UpdateBrand(ctx context.Context, input *dto.UpdateBrandInput) (*model.Brand, error) {
	b, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("brand not found")
	}

	b.Name = input.Name
	b.IsActive = input.IsActive
	b.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionBrands, stream.ActionUpdated, b.ID)
	return b, nil
}

func (uc *brandUseCase) DeleteBrand(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.Notify(ctx, events.CollectionBrands, stream.ActionDeleted, id)
	return nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/vendors"
	"github.com/rasoihq/kitchen-service/internal/vendors/dto"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

type vendorUseCase struct {
	repo     vendor.Repository
	notifier events.Notifier
	logger   logger.ZapLogger
}

func NewVendorUseCase(repo vendor.Repository, notifier events.Notifier, log logger.ZapLogger) vendor.UseCase {
	return &vendorUseCase{repo: repo, notifier: notifier, logger: log}
}

func (uc *vendorUseCase) CreateVendor(ctx context.Context, input *dto.CreateVendorInput) (*model.Vendor, error) {
	now := time.Now()
	v := &model.Vendor{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		ContactName: input.ContactName,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionVendors, stream.ActionCreated, v.ID)
	return v, nil
}

func (uc *vendorUseCase) GetVendor(ctx context.Context, id string) (*model.Vendor, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *vendorUseCase) ListVendors(ctx context.Context, filters *dto.VendorFilters) ([]model.Vendor, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *vendorUseCase) UpdateVendor(ctx context.Context, input *dto.UpdateVendorInput) (*model.Vendor, error) {
	v, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("vendor not found")
	}

	v.Name = input.Name
	v.ContactName = input.ContactName
	v.Phone = input.Phone
	v.Email = input.Email
	v.Address = input.Address
	v.IsActive = input.IsActive
	v.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionVendors, stream.ActionUpdated, v.ID)
	return v, nil
}

func (uc *vendorUseCase) DeleteVendor(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.notifier.Notify(ctx, events.CollectionVendors, stream.ActionDeleted, id)
	return nil
}

func (uc *vendorUseCase) SetQuotes(ctx context.Context, vendorID string, inputs []dto.QuoteInput) (*model.Vendor, error) {
	v, err := uc.repo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("vendor not found")
	}

	now := time.Now()
	quotes := make([]model.VendorQuote, 0, len(inputs))
	for _, in := range inputs {
		quotes = append(quotes, model.VendorQuote{
			ID:        uuid.New().String(),
			VendorID:  vendorID,
			ItemName:  in.ItemName,
			Price:     in.Price,
			Unit:      in.Unit,
			UpdatedAt: now,
		})
	}

	if err := uc.repo.ReplaceQuotes(ctx, vendorID, quotes); err != nil {
		return nil, err
	}
	v.Quotes = quotes

	uc.notifier.Notify(ctx, events.CollectionVendors, stream.ActionUpdated, vendorID)
	return v, nil
}

func (uc *vendorUseCase) MarketAnalysis(ctx context.Context, itemName string) (*vendor.MarketAnalysis, error) {
	quotes, err := uc.repo.QuotesForItem(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return vendor.AnalyzeMarket(itemName, quotes), nil
}

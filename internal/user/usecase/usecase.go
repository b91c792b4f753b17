package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/user"
	"github.com/rasoihq/kitchen-service/internal/user/dto"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

type userUseCase struct {
	repo     user.Repository
	tokens   *auth.TokenManager
	notifier events.Notifier
	ownerCap int
	logger   logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, notifier events.Notifier, ownerCap int, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		ownerCap: ownerCap,
		logger:   log,
	}
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.IsActive {
		return "", nil, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (uc *userUseCase) Me(ctx context.Context, id string) (*model.User, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	role := input.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	if role == model.RoleOwner {
		owners, err := uc.repo.CountActiveByRole(ctx, model.RoleOwner)
		if err != nil {
			return nil, err
		}
		if owners >= uc.ownerCap {
			return nil, user.ErrOwnerCap
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        input.Email,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Role:         role,
		IsActive:     true,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionUsers, stream.ActionCreated, u.ID)
	return u, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("user not found")
	}
	if !input.Role.Valid() {
		return nil, errors.New("invalid role")
	}

	losingOwner := u.Role == model.RoleOwner && u.IsActive &&
		(input.Role != model.RoleOwner || !input.IsActive)
	if losingOwner {
		owners, err := uc.repo.CountActiveByRole(ctx, model.RoleOwner)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, user.ErrSoleOwner
		}
	}

	gainingOwner := u.Role != model.RoleOwner && input.Role == model.RoleOwner
	if gainingOwner {
		owners, err := uc.repo.CountActiveByRole(ctx, model.RoleOwner)
		if err != nil {
			return nil, err
		}
		if owners >= uc.ownerCap {
			return nil, user.ErrOwnerCap
		}
	}

	u.DisplayName = input.DisplayName
	u.Role = input.Role
	u.IsActive = input.IsActive
	u.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, events.CollectionUsers, stream.ActionUpdated, u.ID)
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return uc.repo.FindAll(ctx)
}

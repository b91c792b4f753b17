package user

import (
	"context"
	"errors"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/user/dto"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrOwnerCap           = errors.New("owner account limit reached")
	// ErrSoleOwner blocks demoting or deactivating the last active owner.
	ErrSoleOwner = errors.New("cannot demote or deactivate the sole owner")
)

type UseCase interface {
	// Login verifies credentials and returns a session token with the user.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Me(ctx context.Context, id string) (*model.User, error)
	// CreateUser provisions a staff account without touching the caller's
	// session.
	CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

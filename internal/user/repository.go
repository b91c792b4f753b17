package user

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	// CountActiveByRole counts active accounts holding the role.
	CountActiveByRole(ctx context.Context, role model.Role) (int, error)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/user"
	"github.com/rasoihq/kitchen-service/internal/user/dto"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type memoryRepo struct {
	users map[string]*model.User
}

func newMemoryRepo(users ...*model.User) *memoryRepo {
	repo := &memoryRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memoryRepo) Create(ctx context.Context, u *model.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, u *model.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryRepo) CountActiveByRole(ctx context.Context, role model.Role) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Role == role && u.IsActive {
			count++
		}
	}
	return count, nil
}

func activeUser(id string, role model.Role) *model.User {
	return &model.User{
		BaseModel: model.BaseModel{ID: id},
		Email:     id + "@kitchen.example",
		Role:      role,
		IsActive:  true,
	}
}

func newTestUseCase(repo user.Repository, ownerCap int) user.UseCase {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserUseCase(repo, tokens, events.NopNotifier{}, ownerCap, logger.NewNop())
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := activeUser("u1", model.RoleStaff)
	u.PasswordHash = string(hash)
	uc := newTestUseCase(newMemoryRepo(u), 2)

	token, got, err := uc.Login(context.Background(), u.Email, "hunter2")
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if token == "" {
		t.Error("empty token on successful login")
	}
	if got.ID != "u1" {
		t.Errorf("logged in as %s, want u1", got.ID)
	}

	if _, _, err := uc.Login(context.Background(), u.Email, "wrong"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := uc.Login(context.Background(), "nobody@kitchen.example", "x"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	u := activeUser("u1", model.RoleStaff)
	u.PasswordHash = string(hash)
	u.IsActive = false
	uc := newTestUseCase(newMemoryRepo(u), 2)

	if _, _, err := uc.Login(context.Background(), u.Email, "hunter2"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("inactive account: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUserOwnerCap(t *testing.T) {
	repo := newMemoryRepo(
		activeUser("o1", model.RoleOwner),
		activeUser("o2", model.RoleOwner),
	)
	uc := newTestUseCase(repo, 2)

	_, err := uc.CreateUser(context.Background(), &dto.CreateUserInput{
		Email:    "third@kitchen.example",
		Password: "secret",
		Role:     model.RoleOwner,
	})
	if !errors.Is(err, user.ErrOwnerCap) {
		t.Errorf("err = %v, want ErrOwnerCap", err)
	}

	// Staff accounts are unaffected by the cap.
	if _, err := uc.CreateUser(context.Background(), &dto.CreateUserInput{
		Email:    "staff@kitchen.example",
		Password: "secret",
		Role:     model.RoleStaff,
	}); err != nil {
		t.Errorf("staff creation failed: %v", err)
	}
}

func TestCreateUserEmailTaken(t *testing.T) {
	existing := activeUser("u1", model.RoleStaff)
	uc := newTestUseCase(newMemoryRepo(existing), 2)

	_, err := uc.CreateUser(context.Background(), &dto.CreateUserInput{
		Email:    existing.Email,
		Password: "secret",
	})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUpdateUserSoleOwnerGuard(t *testing.T) {
	repo := newMemoryRepo(activeUser("o1", model.RoleOwner))
	uc := newTestUseCase(repo, 2)

	// Demotion of the only active owner is blocked.
	_, err := uc.UpdateUser(context.Background(), &dto.UpdateUserInput{
		ID: "o1", Role: model.RoleManager, IsActive: true,
	})
	if !errors.Is(err, user.ErrSoleOwner) {
		t.Errorf("demotion: err = %v, want ErrSoleOwner", err)
	}

	// Deactivation too.
	_, err = uc.UpdateUser(context.Background(), &dto.UpdateUserInput{
		ID: "o1", Role: model.RoleOwner, IsActive: false,
	})
	if !errors.Is(err, user.ErrSoleOwner) {
		t.Errorf("deactivation: err = %v, want ErrSoleOwner", err)
	}
}

func TestUpdateUserDemotionWithSecondOwner(t *testing.T) {
	repo := newMemoryRepo(
		activeUser("o1", model.RoleOwner),
		activeUser("o2", model.RoleOwner),
	)
	uc := newTestUseCase(repo, 2)

	got, err := uc.UpdateUser(context.Background(), &dto.UpdateUserInput{
		ID: "o1", Role: model.RoleManager, IsActive: true,
	})
	if err != nil {
		t.Fatalf("demotion with backup owner failed: %v", err)
	}
	if got.Role != model.RoleManager {
		t.Errorf("role = %v, want manager", got.Role)
	}
}

func TestUpdateUserPromotionRespectsCap(t *testing.T) {
	repo := newMemoryRepo(
		activeUser("o1", model.RoleOwner),
		activeUser("o2", model.RoleOwner),
		activeUser("m1", model.RoleManager),
	)
	uc := newTestUseCase(repo, 2)

	_, err := uc.UpdateUser(context.Background(), &dto.UpdateUserInput{
		ID: "m1", Role: model.RoleOwner, IsActive: true,
	})
	if !errors.Is(err, user.ErrOwnerCap) {
		t.Errorf("err = %v, want ErrOwnerCap", err)
	}
}

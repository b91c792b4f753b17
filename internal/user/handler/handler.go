package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/internal/user"
	"github.com/rasoihq/kitchen-service/internal/user/dto"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrInvalidCredentials", nil))
		return
	}

	token, u, err := h.uc.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, i18n.T("en", "ErrInvalidCredentials", nil))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": u})
}

// Me handles GET /api/v1/auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.uc.Me(r.Context(), auth.GetUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to load session user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		respond.Error(w, http.StatusUnauthorized, i18n.T("en", "ErrNotFound", nil))
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if auth.GetRole(r.Context()) != model.RoleOwner {
		respond.Error(w, http.StatusForbidden, "only owners can provision accounts")
		return
	}

	var input dto.CreateUserInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.Email) == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "email"}))
		return
	}
	if input.Password == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T("en", "ErrMissingField", map[string]interface{}{"Field": "password"}))
		return
	}

	u, err := h.uc.CreateUser(r.Context(), &input)
	if err != nil {
		h.respondUserError(w, err, "failed to create user")
		return
	}
	respond.JSON(w, http.StatusCreated, u)
}

// Update handles PUT /api/v1/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if auth.GetRole(r.Context()) != model.RoleOwner {
		respond.Error(w, http.StatusForbidden, "only owners can manage accounts")
		return
	}

	var input dto.UpdateUserInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = r.PathValue("id")

	u, err := h.uc.UpdateUser(r.Context(), &input)
	if err != nil {
		h.respondUserError(w, err, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if auth.GetRole(r.Context()) != model.RoleOwner {
		respond.Error(w, http.StatusForbidden, "only owners can list accounts")
		return
	}

	users, err := h.uc.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"items": users})
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrEmailTaken", nil))
	case errors.Is(err, user.ErrOwnerCap):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrOwnerCap", nil))
	case errors.Is(err, user.ErrSoleOwner):
		respond.Error(w, http.StatusConflict, i18n.T("en", "ErrSoleOwner", nil))
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respond.Error(w, http.StatusBadRequest, err.Error())
	}
}

package dto

import "github.com/rasoihq/kitchen-service/internal/model"

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserInput struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	DisplayName string     `json:"display_name"`
	Role        model.Role `json:"role"`
}

type UpdateUserInput struct {
	ID          string     `json:"-"`
	DisplayName string     `json:"display_name"`
	Role        model.Role `json:"role"`
	IsActive    bool       `json:"is_active"`
}

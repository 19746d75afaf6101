package request

import (
	"strings"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(strings.TrimSpace(r.Username), r.Password)
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role" binding:"required,oneof=admin cashier"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
}

func (r RegisterRequest) ToDomain(passwordHash string) (*user.User, error) {
	username, err := user.NewUsername(strings.TrimSpace(r.Username))
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, err
	}

	var email *user.Email
	if r.Email != nil && strings.TrimSpace(*r.Email) != "" {
		e, err := user.NewEmail(strings.TrimSpace(*r.Email))
		if err != nil {
			return nil, err
		}
		email = &e
	}

	return user.NewUser(username, strings.TrimSpace(r.Name), passwordHash, role, email), nil
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

//go:build unit || e2e

package builder

import (
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
)

type AuthBuilder struct {
	Username string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Username: "cashier1",
		Password: "password123",
	}
}

func (b *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Username: b.Username,
		Password: b.Password,
	}
}

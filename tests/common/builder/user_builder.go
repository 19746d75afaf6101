//go:build unit || e2e

package builder

import (
	domuser "github.com/fawwazmw/cashier-app/internal/domain/user"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Username     string
	Name         string
	Email        *string
	Password     string
	PasswordHash string
	Role         domuser.Role
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	email := "cashier@example.com"
	return &UserBuilder{
		ID:           uuid.New(),
		Username:     "cashier1",
		Name:         "Test Cashier",
		Email:        &email,
		Password:     "password123",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
		Role:         domuser.RoleCashier,
		IsActive:     true,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) WithRole(role domuser.Role) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// Build methods
func (b *UserBuilder) BuildDomain() (*domuser.User, error) {
	username, err := domuser.NewUsername(b.Username)
	if err != nil {
		return nil, err
	}

	var email *domuser.Email
	if b.Email != nil {
		e, err := domuser.NewEmail(*b.Email)
		if err != nil {
			return nil, err
		}
		email = &e
	}

	return domuser.NewUser(username, b.Name, b.PasswordHash, b.Role, email), nil
}

func (b *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       b.ID,
		Username: b.Username,
		Name:     b.Name,
		Email:    b.Email,
		Role:     b.Role.String(),
		IsActive: b.IsActive,
	}
}

func (b *UserBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Username: b.Username,
		Name:     b.Name,
		Password: b.Password,
		Role:     b.Role.String(),
		Email:    b.Email,
	}
}

package repository

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	var email *string
	if u.Email() != nil {
		s := u.Email().String()
		email = &s
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, name, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Username().String(), u.Name(), email, u.PasswordHash(), string(u.Role()), u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, patch shared.ProfilePatch) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET
			name       = COALESCE($2, name),
			email      = COALESCE($3, email),
			phone      = COALESCE($4, phone),
			updated_at = NOW()
		 WHERE id = $1 AND is_active = TRUE`,
		userID, patch.Name, patch.Email, patch.Phone)
	if err != nil {
		return infra.WrapRepoErr("failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`,
		userID, passwordHash)
	if err != nil {
		return infra.WrapRepoErr("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

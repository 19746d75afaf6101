package readstore

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, name, email, phone, role, is_active
		 FROM users WHERE id = $1`, id)

	v, _, err := scanUserView(row, false)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return v, nil
}

// FindByUsername returns the user view plus the stored password hash for
// credential verification.
func (r *UserReadStore) FindByUsername(ctx context.Context, username string) (*queries.AuthorizedUserView, string, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, name, email, phone, role, is_active, password_hash
		 FROM users WHERE username = $1 AND is_active = TRUE`, username)

	v, hash, err := scanUserView(row, true)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by username", err)
	}
	return v, hash, nil
}

func (r *UserReadStore) PasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1 AND is_active = TRUE`, id).Scan(&hash)
	if err != nil {
		if infra.IsNoRows(err) {
			return "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to load password hash", err)
	}
	return hash, nil
}

func scanUserView(row interface{ Scan(dest ...any) error }, withHash bool) (*queries.AuthorizedUserView, string, error) {
	var v queries.AuthorizedUserView
	var hash string

	dest := []any{&v.ID, &v.Username, &v.Name, &v.Email, &v.Phone, &v.Role, &v.IsActive}
	if withHash {
		dest = append(dest, &hash)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, "", err
	}
	return &v, hash, nil
}

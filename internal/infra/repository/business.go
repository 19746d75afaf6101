package repository

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/domain/business"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"

	"github.com/google/uuid"
)

type BusinessRepository struct {
	db db.DBTX
}

func NewBusinessRepository(db db.DBTX) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Upsert keeps a single active business profile: the existing row is updated
// in place, otherwise a fresh one is inserted.
func (r *BusinessRepository) Upsert(ctx context.Context, b *business.Business) (uuid.UUID, error) {
	var existing uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT id FROM business WHERE is_active = TRUE ORDER BY created_at LIMIT 1`).Scan(&existing)
	if err != nil {
		if !infra.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("failed to find business profile", err)
		}

		var id uuid.UUID
		err := r.db.QueryRow(ctx,
			`INSERT INTO business (id, name, owner, address, phone, email, description, category, logo_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			b.ID(), b.Name(), b.Owner(), b.Address(), b.Phone(), b.Email(), b.Description(), b.Category(), b.LogoURL(),
		).Scan(&id)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create business profile", err)
		}
		return id, nil
	}

	_, err = r.db.Exec(ctx,
		`UPDATE business SET
			name        = $2,
			owner       = $3,
			address     = $4,
			phone       = $5,
			email       = COALESCE($6, email),
			description = COALESCE($7, description),
			category    = COALESCE($8, category),
			logo_url    = COALESCE($9, logo_url),
			updated_at  = NOW()
		 WHERE id = $1`,
		existing, b.Name(), b.Owner(), b.Address(), b.Phone(), b.Email(), b.Description(), b.Category(), b.LogoURL())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to update business profile", err)
	}
	return existing, nil
}

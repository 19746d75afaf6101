package readstore

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
)

type BusinessReadStore struct {
	db db.DBTX
}

func NewBusinessReadStore(db db.DBTX) *BusinessReadStore {
	return &BusinessReadStore{db: db}
}

func (r *BusinessReadStore) Find(ctx context.Context) (*queries.BusinessView, error) {
	var v queries.BusinessView
	err := r.db.QueryRow(ctx,
		`SELECT id, name, owner, address, phone, email, description, category, logo_url, created_at, updated_at
		 FROM business WHERE is_active = TRUE ORDER BY created_at LIMIT 1`).
		Scan(&v.ID, &v.Name, &v.Owner, &v.Address, &v.Phone,
			&v.Email, &v.Description, &v.Category, &v.LogoURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("business profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find business profile", err)
	}
	return &v, nil
}

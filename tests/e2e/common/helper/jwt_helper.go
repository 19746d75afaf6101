//go:build e2e

package helper

import (
	"testing"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/pkg/jwt"
	"github.com/fawwazmw/cashier-app/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper creates users directly in the database and issues tokens
// signed with the same key the application under test validates with.
type JWTTestHelper struct {
	service *jwt.Service
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		duration = 24 * time.Hour
	}
	return &JWTTestHelper{service: jwt.NewService(cfg.Secret, duration)}
}

func (h *JWTTestHelper) CreateUser(t *testing.T, db dbtest.DBLike, username, password string, role user.Role) uuid.UUID {
	t.Helper()

	id, err := dbtest.CreateUser(db, username, password, role.String())
	require.NoError(t, err, "failed to create test user")
	return id
}

func (h *JWTTestHelper) TokenFor(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()

	token, err := h.service.GenerateToken(userID, role)
	require.NoError(t, err, "failed to generate test token")
	return token
}

package commands

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/pkg/jwt"
	"github.com/fawwazmw/cashier-app/internal/pkg/password"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrDuplicateUsername    = errs.New("username already exists")
)

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) (*queries.AuthorizedUserView, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req reqdto.ChangePasswordRequest) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	// Same error for unknown user and wrong password to prevent enumeration.
	view, hash, err := a.readStore.FindByUsername(ctx, credentials.Username.String())
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(hash, credentials.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{Token: token, User: view}, nil
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error) {
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u, err := req.ToDomain(hash)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Users().Create(ctx, u)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateUsername)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.readStore.FindByID(ctx, id)
}

func (a *authCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest) (*queries.AuthorizedUserView, error) {
	patch := shared.ProfilePatch{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if patch.Name == nil && patch.Email == nil && patch.Phone == nil {
		return nil, ErrEmptyUpdate
	}

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, patch); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrUserNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.readStore.FindByID(ctx, userID)
}

func (a *authCommandsImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req reqdto.ChangePasswordRequest) error {
	currentHash, err := a.readStore.PasswordHash(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrUserNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(currentHash, req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}

	newHash, err := password.HashPassword(req.NewPassword)
	if err != nil {
		return errs.Mark(err, ErrAuthenticationFailed)
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().UpdatePassword(ctx, userID, newHash); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

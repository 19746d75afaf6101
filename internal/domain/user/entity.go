package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Covers auth and ownership of transactions.
type User struct {
	id           uuid.UUID
	username     Username
	name         string
	email        *Email
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username Username, name, passwordHash string, role Role, email *Email) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() Username   { return u.username }
func (u *User) Name() string         { return u.name }
func (u *User) Email() *Email        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

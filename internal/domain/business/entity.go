package business

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrMissingRequiredField = errors.New("business name, owner, address and phone are required")

// Business holds the single active store profile shown on receipts.
type Business struct {
	id          uuid.UUID
	name        string
	owner       string
	address     string
	phone       string
	email       *string
	description *string
	category    *string
	logoURL     *string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBusiness(name, owner, address, phone string, email, description, category, logoURL *string) (*Business, error) {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(owner) == "" ||
		strings.TrimSpace(address) == "" ||
		strings.TrimSpace(phone) == "" {
		return nil, ErrMissingRequiredField
	}

	return &Business{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		owner:       strings.TrimSpace(owner),
		address:     strings.TrimSpace(address),
		phone:       strings.TrimSpace(phone),
		email:       email,
		description: description,
		category:    category,
		logoURL:     logoURL,
		isActive:    true,
	}, nil
}

func (b *Business) ID() uuid.UUID        { return b.id }
func (b *Business) Name() string         { return b.name }
func (b *Business) Owner() string        { return b.owner }
func (b *Business) Address() string      { return b.address }
func (b *Business) Phone() string        { return b.phone }
func (b *Business) Email() *string       { return b.email }
func (b *Business) Description() *string { return b.description }
func (b *Business) Category() *string    { return b.category }
func (b *Business) LogoURL() *string     { return b.logoURL }
func (b *Business) IsActive() bool       { return b.isActive }
func (b *Business) CreatedAt() time.Time { return b.createdAt }
func (b *Business) UpdatedAt() time.Time { return b.updatedAt }

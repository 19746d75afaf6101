package product

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidName       = errors.New("product name is required")
	ErrNegativePrice     = errors.New("product price cannot be negative")
	ErrNegativeStock     = errors.New("product stock cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInactive          = errors.New("product is inactive")
)

// Product is the contended aggregate of the system: its stock counter is
// only ever mutated inside the store's atomic units.
type Product struct {
	id          int64
	name        string
	price       float64
	stock       int
	category    string
	description *string
	imageURL    *string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(name string, price float64, stock int, category string, description, imageURL *string) (*Product, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	return &Product{
		name:        trimmed,
		price:       price,
		stock:       stock,
		category:    strings.TrimSpace(category),
		description: description,
		imageURL:    imageURL,
		isActive:    true,
	}, nil
}

func ReconstructProduct(
	id int64,
	name string,
	price float64,
	stock int,
	category string,
	description, imageURL *string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		name:        name,
		price:       price,
		stock:       stock,
		category:    category,
		description: description,
		imageURL:    imageURL,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Reserve validates availability for a prospective sale. It does not mutate
// the stock counter; the decrement happens inside the store transaction.
func (p *Product) Reserve(qty int) error {
	if !p.isActive {
		return ErrInactive
	}
	if qty > p.stock {
		return ErrInsufficientStock
	}
	return nil
}

func (p *Product) Deactivate() {
	p.isActive = false
}

func (p *Product) ID() int64            { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Price() float64       { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) Category() string     { return p.category }
func (p *Product) Description() *string { return p.description }
func (p *Product) ImageURL() *string    { return p.imageURL }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

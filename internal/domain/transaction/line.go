package transaction

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
)

// Line captures a snapshot of the product at the moment of sale, so the
// historical record is decoupled from later product edits. Immutable after
// creation.
type Line struct {
	productID   int64
	productName string
	unitPrice   float64
	quantity    int
	subtotal    float64
}

func NewLine(productID int64, productName string, unitPrice float64, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return Line{}, ErrNegativePrice
	}
	return Line{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		subtotal:    unitPrice * float64(quantity),
	}, nil
}

func ReconstructLine(productID int64, productName string, unitPrice float64, quantity int, subtotal float64) Line {
	return Line{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		subtotal:    subtotal,
	}
}

func (l Line) ProductID() int64    { return l.productID }
func (l Line) ProductName() string { return l.productName }
func (l Line) UnitPrice() float64  { return l.unitPrice }
func (l Line) Quantity() int       { return l.quantity }
func (l Line) Subtotal() float64   { return l.subtotal }

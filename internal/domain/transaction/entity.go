package transaction

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// TotalEpsilon is the tolerance when comparing the caller-declared total to
// the total computed from current product prices. The declared total is a
// sanity check against stale client carts, never authoritative.
const TotalEpsilon = 0.01

var (
	ErrNoLines                = errors.New("transaction requires at least one line")
	ErrTotalMismatch          = errors.New("declared total does not match computed total")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

type CustomerInfo struct {
	Name  *string
	Phone *string
	Notes *string
}

// Transaction aggregates its lines; they are created together and the lines
// are immutable afterwards. Status is the only mutable field, and only
// pending→paid and pending→cancelled are legal.
type Transaction struct {
	id            string
	userID        uuid.UUID
	total         float64
	status        Status
	paymentMethod PaymentMethod
	customer      CustomerInfo
	paymentToken  *string
	lines         []Line
	createdAt     time.Time
	updatedAt     time.Time
}

// NewTransaction builds a pending transaction from validated line snapshots.
// The total is computed from the lines; declaredTotal must agree within
// TotalEpsilon.
func NewTransaction(
	id string,
	userID uuid.UUID,
	declaredTotal float64,
	method PaymentMethod,
	customer CustomerInfo,
	lines []Line,
) (*Transaction, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	var computed float64
	for _, l := range lines {
		computed += l.Subtotal()
	}
	if math.Abs(computed-declaredTotal) > TotalEpsilon {
		return nil, ErrTotalMismatch
	}

	return &Transaction{
		id:            id,
		userID:        userID,
		total:         computed,
		status:        StatusPending,
		paymentMethod: method,
		customer:      customer,
		lines:         lines,
	}, nil
}

func ReconstructTransaction(
	id string,
	userID uuid.UUID,
	total float64,
	status Status,
	method PaymentMethod,
	customer CustomerInfo,
	paymentToken *string,
	lines []Line,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		userID:        userID,
		total:         total,
		status:        status,
		paymentMethod: method,
		customer:      customer,
		paymentToken:  paymentToken,
		lines:         lines,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// CanTransitionTo reports whether a status change is legal. Terminal states
// admit nothing, including self-transitions.
func (t *Transaction) CanTransitionTo(target Status) bool {
	if t.status.IsTerminal() {
		return false
	}
	return target == StatusPaid || target == StatusCancelled
}

// MarkPaid settles the transaction. Stock was already deducted at creation,
// so there is no inventory effect.
func (t *Transaction) MarkPaid() error {
	if !t.CanTransitionTo(StatusPaid) {
		return ErrInvalidStateTransition
	}
	t.status = StatusPaid
	return nil
}

// Cancel moves the transaction to cancelled and returns the per-product
// quantities the caller must restore in the same atomic unit as the status
// write.
func (t *Transaction) Cancel() (map[int64]int, error) {
	if !t.CanTransitionTo(StatusCancelled) {
		return nil, ErrInvalidStateTransition
	}
	restore := make(map[int64]int, len(t.lines))
	for _, l := range t.lines {
		restore[l.ProductID()] += l.Quantity()
	}
	t.status = StatusCancelled
	return restore, nil
}

func (t *Transaction) AttachPaymentToken(token string) {
	t.paymentToken = &token
}

func (t *Transaction) IsPending() bool { return t.status == StatusPending }

func (t *Transaction) ID() string                   { return t.id }
func (t *Transaction) UserID() uuid.UUID            { return t.userID }
func (t *Transaction) Total() float64               { return t.total }
func (t *Transaction) Status() Status               { return t.status }
func (t *Transaction) PaymentMethod() PaymentMethod { return t.paymentMethod }
func (t *Transaction) Customer() CustomerInfo       { return t.customer }
func (t *Transaction) PaymentToken() *string        { return t.paymentToken }
func (t *Transaction) Lines() []Line                { return t.lines }
func (t *Transaction) CreatedAt() time.Time         { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time         { return t.updatedAt }

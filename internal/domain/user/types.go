package user

type Role string

const (
	// RoleAdmin may act on any product, transaction, or user.
	RoleAdmin Role = "admin"
	// RoleCashier may only read or transition transactions it created.
	RoleCashier Role = "cashier"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier:
		return true
	default:
		return false
	}
}

// CanAccessTransactionOf reports whether a principal with this role may
// read or transition a transaction owned by another principal.
func (r Role) CanAccessTransactionOf(sameOwner bool) bool {
	if r == RoleAdmin {
		return true
	}
	return sameOwner
}

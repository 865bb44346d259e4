package domain

// StaffRole is the role a staff member holds within their casino.
type StaffRole string

const (
	RoleDealer  StaffRole = "dealer"
	RolePitBoss StaffRole = "pit_boss"
	RoleCashier StaffRole = "cashier"
	RoleAdmin   StaffRole = "admin"
)

// Valid reports whether r is a known role.
func (r StaffRole) Valid() bool {
	switch r {
	case RoleDealer, RolePitBoss, RoleCashier, RoleAdmin:
		return true
	}
	return false
}

// Staff is an employee who can sign in and act within a single casino.
type Staff struct {
	StaffID      string    `json:"staffID"`
	CasinoID     string    `json:"casinoID"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	AuditFields
}

// Actor identifies the authenticated staff member performing an operation.
// It is built from the session, never from request input.
type Actor struct {
	StaffID  string
	CasinoID string
	Role     StaffRole
}

// HasAnyRole reports whether the actor holds one of roles. Admins pass every check.
func (a Actor) HasAnyRole(roles ...StaffRole) bool {
	if a.Role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

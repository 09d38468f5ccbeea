package types

// Roles a user can hold. Coordinatore is the only role authorized for
// administrative mutations.
const (
	RoleOperator    = "Operatore"
	RoleCoordinator = "Coordinatore"
	RoleOther       = "Altro"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleOperator, RoleCoordinator, RoleOther:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"nome" db:"nome"`

	// Role indicates the user's authorization level within the system.
	// One of RoleOperator, RoleCoordinator or RoleOther.
	Role string `json:"ruolo" db:"ruolo"`

	// Email is the user's unique email address, also the login subject.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Empty for users that cannot log in. Never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`
}

// UserPatch is a partial update for a User. Nil fields are left untouched.
type UserPatch struct {
	Name  *string `json:"nome"`
	Role  *string `json:"ruolo"`
	Email *string `json:"email"`
}

package domain

// Identity is the {user id, role} pair resolved from a verified token. It
// lives for the duration of a single request and is never persisted.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

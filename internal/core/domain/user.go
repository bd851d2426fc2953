package domain

import "time"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// DefaultBanReason is applied when a ban is issued with an empty reason.
const DefaultBanReason = "Violated terms of service"

// User models a record in the user directory. Records are created by the
// external auth provider on sign-up; this service only reads and mutates them.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Banned     bool       `json:"banned"`
	BanReason  string     `json:"ban_reason,omitempty"`
	BanExpires *time.Time `json:"ban_expires,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// CanSeeAdminNav reports whether the dashboard surfaces the admin console
// link for a role. The navigation set is wider than the RPC authorization
// set: super-admin sees the link even though the RPC gate only admits the
// configured roles (default: admin alone).
func CanSeeAdminNav(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

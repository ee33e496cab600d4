package domain

// UserRole scopes what a user may do in the application.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleSeller    UserRole = "vendedor"
	RoleCollector UserRole = "cobrador"
)

// User is an application user. Authentication itself is an external concern;
// the core only needs the resolved actor id for audit attribution.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuditFields
}

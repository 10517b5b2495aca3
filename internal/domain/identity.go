package domain

// RoleAdmin is the role tag required for category mutations.
const RoleAdmin = "admin"

// Identity is the authenticated caller as reported by the auth service.
// It lives for a single request and is never persisted here.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"fName"`
	LastName  string `json:"lName"`
	Phone     string `json:"phone"`
	Role      string `json:"roles"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Action is a mutation the caller is attempting on a category.
type Action string

const (
	ActionCreateCategory Action = "create_category"
	ActionUpdateCategory Action = "update_category"
	ActionDeleteCategory Action = "delete_category"
)

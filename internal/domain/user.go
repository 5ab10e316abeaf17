package domain

// Role represents the access level of a console user.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleSupportAgent Role = "SUPPORT_AGENT"
)

// User is the authenticated console operator. Users are owned by the
// remote API; the client fetches them and never edits them locally.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

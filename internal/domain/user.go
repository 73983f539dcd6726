package domain

type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleVolunteer UserRole = "VOLUNTEER"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusRejected UserStatus = "REJECTED"
)

type User struct {
	ID           int32      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedOn    string     `json:"created_on"`
	UpdatedOn    string     `json:"updated_on"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Actor is the identity the session layer attaches to every gate and
// bulk-engine call. The core never authenticates credentials itself.
type Actor struct {
	ID      int32 `json:"id"`
	IsAdmin bool  `json:"is_admin"`
}

package models

// Roles a user can hold; "user" is the default after signup.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Username  string `gorm:"size:150;not null;uniqueIndex;index:idx_users_username_email,unique" json:"username"`
	Email     string `gorm:"size:254;not null;uniqueIndex;index:idx_users_username_email,unique" json:"email"`
	FirstName string `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName  string `gorm:"size:150;not null;default:''" json:"last_name"`
	Bio       string `gorm:"type:text;not null;default:''" json:"bio"`
	Role      string `gorm:"size:13;not null;default:'user'" json:"role"`

	IsSuperuser bool `gorm:"not null;default:false" json:"-"`
	// bcrypt hash of the last issued confirmation code
	ConfirmationCode *string `gorm:"size:100" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// ValidRole reports whether role is one of the known choices.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

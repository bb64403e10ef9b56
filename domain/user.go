package domain

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account that can authenticate against the platform,
// either with a local password or through a linked Google identity.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"nombre"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Phone        string      `json:"telefono,omitempty"`
	GoogleID     string      `json:"googleId,omitempty"`
	Role         string      `json:"role"`
	Active       bool        `json:"activo"`
	Preferences  Preferences `json:"preferences"`
	LastLogin    *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Preferences holds per-user UI settings.
type Preferences struct {
	Theme         string                  `json:"theme"`
	Language      string                  `json:"language"`
	Notifications NotificationPreferences `json:"notifications"`
}

type NotificationPreferences struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// DefaultPreferences mirrors the defaults applied on account creation.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    "light",
		Language: "es",
		Notifications: NotificationPreferences{
			Email: true,
			Push:  true,
		},
	}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasPassword reports whether the account supports local credential login.
// Google-only accounts carry no password hash.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}

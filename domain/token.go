package domain

// TokenUser is the denormalized account snapshot embedded in access tokens.
// It is an authorization hint only: the request guard always re-resolves the
// authoritative record before trusting role or active status.
type TokenUser struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"nombre,omitempty"`
	Role     string `json:"role,omitempty"`
	GoogleID string `json:"googleId,omitempty"`
	Active   bool   `json:"activo,omitempty"`
}

// TokenPair is the bearer credential set returned by every login path.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Snapshot builds the token view of a user.
func (u *User) Snapshot() TokenUser {
	if u == nil {
		return TokenUser{}
	}
	return TokenUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		GoogleID: u.GoogleID,
		Active:   u.Active,
	}
}

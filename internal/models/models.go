package models

// Account is a stored credential record. Owned by the storage layer;
// PasswordHash must never leave the service boundary.
type Account struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
}

// PublicProfile is the account view returned to clients.
type PublicProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

func (a Account) Profile() PublicProfile {
	return PublicProfile{
		Username: a.Username,
		Email:    a.Email,
		FullName: a.FullName,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

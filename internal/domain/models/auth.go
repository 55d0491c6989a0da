package models

// AdminUser is the single configured administrative identity.
type AdminUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

const RoleAdmin = "ADMIN"

package dto

import "heritage_cms/internal/domain/models"

// LoginResponse pairs the issued tokens with the authenticated identity.
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         models.AdminUser `json:"user"`
}

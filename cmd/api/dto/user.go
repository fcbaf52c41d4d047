package dto

import (
	"time"

	"inkpress/models"
)

// UserDTO exposes public user fields. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID        string     `json:"id"`
	Email     string     `json:"email" example:"admin@example.com"`
	Name      string     `json:"name" example:"Admin"`
	Role      string     `json:"role" example:"admin"`
	Bio       string     `json:"bio,omitempty"`
	Avatar    *ImageDTO  `json:"avatar,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FromUser maps a user model into its DTO.
func FromUser(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	d := &UserDTO{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Bio:       u.Bio,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Avatar != nil {
		d.Avatar = &ImageDTO{URL: u.Avatar.URL, PublicID: u.Avatar.PublicID}
	}
	return d
}

// AuthResponseDTO is the register/login response: a bearer token plus the
// account it belongs to.
type AuthResponseDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

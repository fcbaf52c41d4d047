package auth

import (
	"errors"

	"inkpress/models"
)

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrAccountInactive  = errors.New("account is inactive")
	ErrForbidden        = errors.New("admin access required")
)

// Principal is the authenticated user behind a request. A nil *Principal
// means the request is anonymous.
type Principal struct {
	User *models.User
}

// FromUser wraps a loaded user as a request principal.
func FromUser(user *models.User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{User: user}
}

// RequireAuth fails when the principal is absent or its account is inactive.
func RequireAuth(p *Principal) error {
	if p == nil || p.User == nil {
		return ErrNotAuthenticated
	}
	if !p.User.IsActive {
		return ErrAccountInactive
	}
	return nil
}

// RequireAdmin applies RequireAuth, then checks for the admin role.
func RequireAdmin(p *Principal) error {
	if err := RequireAuth(p); err != nil {
		return err
	}
	if p.User.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

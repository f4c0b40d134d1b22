package service

import "github.com/portfolio-cms/portfolio-api/internal/core/domain"

// RequireAdmin fails with a Forbidden-class error unless user is an admin.
func RequireAdmin(user *domain.User) error {
	if user == nil || !user.IsAdmin {
		return domain.ErrAdminRequired
	}
	return nil
}

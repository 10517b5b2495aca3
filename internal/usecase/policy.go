package usecase

import (
	"fmt"

	"category_service/internal/domain"
)

// Authorize decides whether the verified identity may perform the requested
// mutation. Current policy: only the admin role mutates categories; reads are
// open to everyone and never pass through here. The check is pure - it must
// not call out to any service - so richer policies (resource owners, scoped
// roles) can replace it without touching callers.
func Authorize(identity *domain.Identity, action domain.Action) error {
	if identity == nil {
		return fmt.Errorf("%w: no identity", domain.ErrPermissionDenied)
	}
	if !identity.IsAdmin() {
		return fmt.Errorf("%w: role '%s' may not %s", domain.ErrPermissionDenied, identity.Role, action)
	}
	return nil
}

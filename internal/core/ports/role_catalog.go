package ports

import "github.com/premios/awards-api/internal/core/domain"

// RoleCatalog resolves the role assigned to new registrations. A catalogue
// that cannot resolve its default role is a configuration error and should be
// rejected at startup, not surfaced to callers.
type RoleCatalog interface {
	Default() (domain.Role, error)
}

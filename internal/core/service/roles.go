package service

import (
	"fmt"

	"github.com/premios/awards-api/internal/core/domain"
)

// StaticRoleCatalog resolves the default registration role from config.
// Validate at startup: an unknown default role means the deployment is
// misconfigured and the process should not serve traffic.
type StaticRoleCatalog struct {
	defaultRole domain.Role
}

// NewStaticRoleCatalog returns a catalogue for the given default role, or
// domain.ErrRoleNotFound when the role is not recognised.
func NewStaticRoleCatalog(defaultRole string) (*StaticRoleCatalog, error) {
	role := domain.Role(defaultRole)
	if !domain.KnownRole(role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrRoleNotFound, defaultRole)
	}
	return &StaticRoleCatalog{defaultRole: role}, nil
}

// Default returns the role assigned to new registrations.
func (c *StaticRoleCatalog) Default() (domain.Role, error) {
	if !domain.KnownRole(c.defaultRole) {
		return "", domain.ErrRoleNotFound
	}
	return c.defaultRole, nil
}

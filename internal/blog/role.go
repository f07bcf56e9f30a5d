package blog

import (
	"context"
	"fmt"
	"strings"
)

type RoleManager struct {
	identity Identity
}

func NewRoleManager(identity Identity) *RoleManager {
	return &RoleManager{
		identity: identity,
	}
}

var _ RoleService = (*RoleManager)(nil)

func (m *RoleManager) ListAll(ctx context.Context) ([]Role, error) {
	roles, err := m.identity.Roles(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity get roles: %w", err)
	}

	return roles, nil
}

func (m *RoleManager) GetByID(ctx context.Context, id string) (*Role, error) {
	role, err := m.identity.FindRoleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("identity get role: %w", err)
	} else if role == nil {
		return nil, fmt.Errorf("role %q: %w", id, ErrNotFound)
	}

	return role, nil
}

func (m *RoleManager) Create(ctx context.Context, in RoleInput) (*Role, error) {
	in = normalizeRole(in)
	if err := validateRole(in); err != nil {
		return nil, err
	}

	role, err := m.identity.CreateRole(ctx, in.Name, in.Description)
	if err != nil {
		return nil, identityFailure("identity create role", err)
	}

	return role, nil
}

func (m *RoleManager) Update(ctx context.Context, id string, in RoleInput) (*Role, error) {
	in = normalizeRole(in)
	if err := validateRole(in); err != nil {
		return nil, err
	}

	role, err := m.identity.UpdateRole(ctx, id, in.Name, in.Description)
	if err != nil {
		return nil, identityFailure("identity update role", err)
	} else if role == nil {
		return nil, fmt.Errorf("role %q: %w", id, ErrNotFound)
	}

	return role, nil
}

// Delete removes the role; its members lose it.
func (m *RoleManager) Delete(ctx context.Context, id string) error {
	deleted, err := m.identity.DeleteRole(ctx, id)
	if err != nil {
		return identityFailure("identity delete role", err)
	} else if !deleted {
		return fmt.Errorf("role %q: %w", id, ErrNotFound)
	}

	return nil
}

func normalizeRole(in RoleInput) RoleInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

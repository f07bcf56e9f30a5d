package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

func (r *Repository) Roles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.ModelContext(ctx, &roles).
		OrderExpr(`"name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}

	return roles, nil
}

func (r *Repository) RoleByID(ctx context.Context, roleID string) (*Role, error) {
	return r.oneRole(ctx, `"t"."roleId" = ?`, roleID)
}

// RoleByName looks the role up by name, ignoring case.
func (r *Repository) RoleByName(ctx context.Context, name string) (*Role, error) {
	return r.oneRole(ctx, `lower("t"."name") = lower(?)`, name)
}

func (r *Repository) oneRole(ctx context.Context, condition string, param any) (*Role, error) {
	role := &Role{}
	err := r.db.ModelContext(ctx, role).
		Where(condition, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

func (r *Repository) CreateRole(ctx context.Context, role *Role) (*Role, error) {
	if _, err := r.db.ModelContext(ctx, role).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert role: %w", mapError(err))
	}

	return role, nil
}

// UpdateRole rewrites name and description. It returns nil, nil when the role does not exist.
func (r *Repository) UpdateRole(ctx context.Context, role *Role) (*Role, error) {
	res, err := r.db.ModelContext(ctx, role).
		Column(Columns.Role.Name, Columns.Role.Description).
		WherePK().
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", mapError(err))
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return role, nil
}

// DeleteRole removes the role and its memberships.
func (r *Repository) DeleteRole(ctx context.Context, roleID string) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Role{ID: roleID}).
		WherePK().
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete role: %w", mapError(err))
	}

	return res.RowsAffected() > 0, nil
}

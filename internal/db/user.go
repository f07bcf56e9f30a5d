package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

func (r *Repository) Users(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.ModelContext(ctx, &users).
		OrderExpr(`"userName" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return users, nil
}

func (r *Repository) UserByID(ctx context.Context, userID string) (*User, error) {
	return r.oneUser(ctx, `"t"."userId" = ?`, userID)
}

// UserByEmail looks the user up by email, ignoring case.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*User, error) {
	return r.oneUser(ctx, `lower("t"."email") = lower(?)`, email)
}

// UserByName looks the user up by user name, ignoring case.
func (r *Repository) UserByName(ctx context.Context, userName string) (*User, error) {
	return r.oneUser(ctx, `lower("t"."userName") = lower(?)`, userName)
}

func (r *Repository) oneUser(ctx context.Context, condition string, param any) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(condition, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *User) (*User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", mapError(err))
	}

	return user, nil
}

// UpdateUser rewrites user name, email and password hash. It returns nil, nil when the user does not exist.
func (r *Repository) UpdateUser(ctx context.Context, user *User) (*User, error) {
	res, err := r.db.ModelContext(ctx, user).
		Column(Columns.User.UserName, Columns.User.Email, Columns.User.PasswordHash).
		WherePK().
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", mapError(err))
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return user, nil
}

// UserRoles returns the roles the user is a member of, ordered by name.
func (r *Repository) UserRoles(ctx context.Context, userID string) ([]Role, error) {
	rows, err := r.UserRolesByUserIDs(ctx, []string{userID})
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(rows))
	for _, row := range rows {
		if row.Role != nil {
			roles = append(roles, *row.Role)
		}
	}

	return roles, nil
}

// UserRolesByUserIDs returns membership rows with their roles for a batch of users.
func (r *Repository) UserRolesByUserIDs(ctx context.Context, userIDs []string) ([]UserRole, error) {
	if len(userIDs) == 0 {
		return []UserRole{}, nil
	}

	var rows []UserRole
	err := r.db.ModelContext(ctx, &rows).
		Relation("Role").
		Where(`"t"."userId" IN (?)`, pg.In(userIDs)).
		OrderExpr(`"role"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}

	return rows, nil
}

func (r *Repository) AddUserRoles(ctx context.Context, userID string, roleIDs []string) error {
	if len(roleIDs) == 0 {
		return nil
	}

	rows := make([]UserRole, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		rows = append(rows, UserRole{UserID: userID, RoleID: roleID})
	}

	if _, err := r.db.ModelContext(ctx, &rows).Insert(); err != nil {
		return fmt.Errorf("failed to insert user roles: %w", mapError(err))
	}

	return nil
}

func (r *Repository) RemoveUserRoles(ctx context.Context, userID string, roleIDs []string) error {
	if len(roleIDs) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, (*UserRole)(nil)).
		Where(`"userId" = ?`, userID).
		Where(`"roleId" IN (?)`, pg.In(roleIDs)).
		Delete()

	if err != nil {
		return fmt.Errorf("failed to delete user roles: %w", err)
	}

	return nil
}

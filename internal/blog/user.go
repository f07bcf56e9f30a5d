package blog

import (
	"context"
	"fmt"
	"strings"
)

type UserManager struct {
	identity Identity
}

func NewUserManager(identity Identity) *UserManager {
	return &UserManager{
		identity: identity,
	}
}

var _ UserService = (*UserManager)(nil)

var knownRoles = []string{RoleAdmin, RoleModerator, RoleUser}

// ListAll returns every user annotated with role names.
func (m *UserManager) ListAll(ctx context.Context) ([]User, error) {
	users, err := m.identity.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity get users: %w", err)
	}

	return users, nil
}

func (m *UserManager) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := m.identity.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("identity get user: %w", err)
	} else if user == nil {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}

	return user, nil
}

func (m *UserManager) GetForEdit(ctx context.Context, id string) (*UserEdit, error) {
	user, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := m.identity.UserRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("identity get user roles: %w", err)
	}
	user.Roles = roles

	return &UserEdit{
		ID:          user.ID,
		Username:    user.UserName,
		Email:       user.Email,
		IsUser:      user.HasRole(RoleUser),
		IsAdmin:     user.HasRole(RoleAdmin),
		IsModerator: user.HasRole(RoleModerator),
	}, nil
}

// Update changes name, email, optionally the password, and replaces the role set.
// All steps run in one unit of work: any failure leaves the account unchanged.
func (m *UserManager) Update(ctx context.Context, id string, in UserUpdate) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateUserUpdate(in); err != nil {
		return nil, err
	}

	var user *User
	err := m.identity.InTransaction(ctx, func(tx Identity) error {
		existing, err := tx.FindUserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("identity get user: %w", err)
		} else if existing == nil {
			return fmt.Errorf("user %q: %w", id, ErrNotFound)
		}

		if user, err = tx.UpdateUser(ctx, id, in.Username, in.Email); err != nil {
			return err
		} else if user == nil {
			return fmt.Errorf("user %q: %w", id, ErrNotFound)
		}

		if in.Password != "" {
			if err := tx.ResetPassword(ctx, id, in.Password); err != nil {
				return err
			}
		}

		current, err := tx.UserRoles(ctx, id)
		if err != nil {
			return err
		}

		// roles outside the known set are not managed here
		toAdd, toRemove := Reconcile(managedRoles(current), in.roleNames(), knownRoles)
		if err := tx.RemoveFromRoles(ctx, id, toRemove); err != nil {
			return err
		}
		if err := tx.AddToRoles(ctx, id, toAdd); err != nil {
			return err
		}

		user.Roles, err = tx.UserRoles(ctx, id)
		return err
	})
	if err != nil {
		return nil, identityFailure("identity update user", err)
	}

	return user, nil
}

// Register creates an account in the User role.
func (m *UserManager) Register(ctx context.Context, in Registration) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	var user *User
	err := m.identity.InTransaction(ctx, func(tx Identity) error {
		var err error
		if user, err = tx.CreateUser(ctx, in); err != nil {
			return err
		}

		if err := tx.AddToRoles(ctx, user.ID, []string{RoleUser}); err != nil {
			return err
		}
		user.Roles = []string{RoleUser}

		return nil
	})
	if err != nil {
		return nil, identityFailure("identity register user", err)
	}

	return user, nil
}

// Authenticate checks credentials; login is either the email or the user name.
func (m *UserManager) Authenticate(ctx context.Context, login, password string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := m.identity.FindUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("identity find user: %w", err)
	} else if user == nil || !m.identity.CheckPassword(user, password) {
		return nil, ErrUnauthorized
	}

	roles, err := m.identity.UserRoles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("identity get user roles: %w", err)
	}
	user.Roles = roles

	return user, nil
}

func (m *UserManager) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	ok, err := m.identity.IsInRole(ctx, userID, role)
	if err != nil {
		return false, fmt.Errorf("identity check role: %w", err)
	}

	return ok, nil
}

func managedRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		for _, known := range knownRoles {
			if r == known {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

package blog

import "context"

// stubIdentity implements Identity with overridable funcs; unset funcs return zero values.
type stubIdentity struct {
	users           func(ctx context.Context) ([]User, error)
	findUserByID    func(ctx context.Context, id string) (*User, error)
	findUserByLogin func(ctx context.Context, login string) (*User, error)
	createUser      func(ctx context.Context, in Registration) (*User, error)
	updateUser      func(ctx context.Context, id, username, email string) (*User, error)
	resetPassword   func(ctx context.Context, id, password string) error
	checkPassword   func(user *User, password string) bool
	userRoles       func(ctx context.Context, userID string) ([]string, error)
	addToRoles      func(ctx context.Context, userID string, roles []string) error
	removeFromRoles func(ctx context.Context, userID string, roles []string) error
	isInRole        func(ctx context.Context, userID, role string) (bool, error)
	roles           func(ctx context.Context) ([]Role, error)
	findRoleByID    func(ctx context.Context, id string) (*Role, error)
	createRole      func(ctx context.Context, name, description string) (*Role, error)
	updateRole      func(ctx context.Context, id, name, description string) (*Role, error)
	deleteRole      func(ctx context.Context, id string) (bool, error)

	transactions int
}

func (s *stubIdentity) Users(ctx context.Context) ([]User, error) {
	if s.users == nil {
		return nil, nil
	}
	return s.users(ctx)
}

func (s *stubIdentity) FindUserByID(ctx context.Context, id string) (*User, error) {
	if s.findUserByID == nil {
		return nil, nil
	}
	return s.findUserByID(ctx, id)
}

func (s *stubIdentity) FindUserByLogin(ctx context.Context, login string) (*User, error) {
	if s.findUserByLogin == nil {
		return nil, nil
	}
	return s.findUserByLogin(ctx, login)
}

func (s *stubIdentity) CreateUser(ctx context.Context, in Registration) (*User, error) {
	if s.createUser == nil {
		return nil, nil
	}
	return s.createUser(ctx, in)
}

func (s *stubIdentity) UpdateUser(ctx context.Context, id, username, email string) (*User, error) {
	if s.updateUser == nil {
		return nil, nil
	}
	return s.updateUser(ctx, id, username, email)
}

func (s *stubIdentity) ResetPassword(ctx context.Context, id, password string) error {
	if s.resetPassword == nil {
		return nil
	}
	return s.resetPassword(ctx, id, password)
}

func (s *stubIdentity) CheckPassword(user *User, password string) bool {
	if s.checkPassword == nil {
		return false
	}
	return s.checkPassword(user, password)
}

func (s *stubIdentity) UserRoles(ctx context.Context, userID string) ([]string, error) {
	if s.userRoles == nil {
		return nil, nil
	}
	return s.userRoles(ctx, userID)
}

func (s *stubIdentity) AddToRoles(ctx context.Context, userID string, roles []string) error {
	if s.addToRoles == nil {
		return nil
	}
	return s.addToRoles(ctx, userID, roles)
}

func (s *stubIdentity) RemoveFromRoles(ctx context.Context, userID string, roles []string) error {
	if s.removeFromRoles == nil {
		return nil
	}
	return s.removeFromRoles(ctx, userID, roles)
}

func (s *stubIdentity) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	if s.isInRole == nil {
		return false, nil
	}
	return s.isInRole(ctx, userID, role)
}

func (s *stubIdentity) Roles(ctx context.Context) ([]Role, error) {
	if s.roles == nil {
		return nil, nil
	}
	return s.roles(ctx)
}

func (s *stubIdentity) FindRoleByID(ctx context.Context, id string) (*Role, error) {
	if s.findRoleByID == nil {
		return nil, nil
	}
	return s.findRoleByID(ctx, id)
}

func (s *stubIdentity) CreateRole(ctx context.Context, name, description string) (*Role, error) {
	if s.createRole == nil {
		return nil, nil
	}
	return s.createRole(ctx, name, description)
}

func (s *stubIdentity) UpdateRole(ctx context.Context, id, name, description string) (*Role, error) {
	if s.updateRole == nil {
		return nil, nil
	}
	return s.updateRole(ctx, id, name, description)
}

func (s *stubIdentity) DeleteRole(ctx context.Context, id string) (bool, error) {
	if s.deleteRole == nil {
		return false, nil
	}
	return s.deleteRole(ctx, id)
}

func (s *stubIdentity) InTransaction(ctx context.Context, fn func(Identity) error) error {
	s.transactions++
	return fn(s)
}

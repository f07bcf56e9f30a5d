package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

// PasswordPolicy describes the requirements a new password has to meet.
type PasswordPolicy struct {
	MinLength    int
	RequireDigit bool
	RequireLower bool
	RequireUpper bool
}

// DefaultPasswordPolicy requires six characters with a digit, a lower and an upper case letter.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:    6,
	RequireDigit: true,
	RequireLower: true,
	RequireUpper: true,
}

// Validate returns every rule the password breaks.
func (p PasswordPolicy) Validate(password string) blog.IdentityErrors {
	var errs blog.IdentityErrors

	if utf8.RuneCountInString(password) < p.MinLength {
		errs = append(errs, blog.IdentityError{
			Code:        blog.CodePasswordTooShort,
			Description: fmt.Sprintf("Passwords must be at least %d characters.", p.MinLength),
		})
	}

	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}

	if p.RequireDigit && !digit {
		errs = append(errs, blog.IdentityError{Code: blog.CodePasswordRequiresDigit, Description: "Passwords must have at least one digit ('0'-'9')."})
	}
	if p.RequireLower && !lower {
		errs = append(errs, blog.IdentityError{Code: blog.CodePasswordRequiresLower, Description: "Passwords must have at least one lowercase ('a'-'z')."})
	}
	if p.RequireUpper && !upper {
		errs = append(errs, blog.IdentityError{Code: blog.CodePasswordRequiresUpper, Description: "Passwords must have at least one uppercase ('A'-'Z')."})
	}

	return errs
}

// Store implements blog.Identity on top of the repository.
type Store struct {
	db     *db.Repository
	policy PasswordPolicy
	cost   int
}

func New(repo *db.Repository, policy PasswordPolicy, cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Store{
		db:     repo,
		policy: policy,
		cost:   cost,
	}
}

var _ blog.Identity = (*Store)(nil)

func (s *Store) with(repo *db.Repository) *Store {
	return &Store{db: repo, policy: s.policy, cost: s.cost}
}

func (s *Store) InTransaction(ctx context.Context, fn func(blog.Identity) error) error {
	return s.db.InTransaction(ctx, func(tx *db.Repository) error {
		return fn(s.with(tx))
	})
}

// Users returns all users with their role names.
func (s *Store) Users(ctx context.Context) ([]blog.User, error) {
	list, err := s.db.Users(ctx)
	if err != nil {
		return nil, err
	}

	users := make(blog.Users, len(list))
	for i := range list {
		users[i] = blog.NewUser(&list[i])
	}

	rows, err := s.db.UserRolesByUserIDs(ctx, users.IDs())
	if err != nil {
		return nil, err
	}
	users.SetRoles(rows)

	return users, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*blog.User, error) {
	if !isUUID(id) {
		return nil, nil
	}

	return toUser(s.db.UserByID(ctx, id))
}

// FindUserByLogin looks the user up by email when login contains '@', by user name otherwise.
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*blog.User, error) {
	if strings.Contains(login, "@") {
		return toUser(s.db.UserByEmail(ctx, login))
	}

	return toUser(s.db.UserByName(ctx, login))
}

func (s *Store) CreateUser(ctx context.Context, in blog.Registration) (*blog.User, error) {
	errs, err := s.checkUnique(ctx, "", in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	errs = append(errs, s.policy.Validate(in.Password)...)
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.db.CreateUser(ctx, &db.User{
		ID:           uuid.NewString(),
		UserName:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, db.ErrConflict) {
		return nil, blog.IdentityErrors{duplicateUserName(in.Username)}
	} else if err != nil {
		return nil, err
	}

	user := blog.NewUser(created)
	return &user, nil
}

// UpdateUser changes user name and email. It returns nil, nil for unknown ids.
func (s *Store) UpdateUser(ctx context.Context, id, username, email string) (*blog.User, error) {
	current, err := s.FindUserByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	if errs, err := s.checkUnique(ctx, id, username, email); err != nil {
		return nil, err
	} else if len(errs) > 0 {
		return nil, errs
	}

	current.UserName = username
	current.Email = email

	return toUser(s.db.UpdateUser(ctx, &current.User))
}

// ResetPassword replaces the password after checking it against the policy.
func (s *Store) ResetPassword(ctx context.Context, id, password string) error {
	if errs := s.policy.Validate(password); len(errs) > 0 {
		return errs
	}

	current, err := s.FindUserByID(ctx, id)
	if err != nil {
		return err
	} else if current == nil {
		return fmt.Errorf("user %q: %w", id, blog.ErrNotFound)
	}

	if current.PasswordHash, err = s.hash(password); err != nil {
		return err
	}

	_, err = s.db.UpdateUser(ctx, &current.User)
	return err
}

func (s *Store) CheckPassword(user *blog.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// UserRoles returns role names of the user ordered by name.
func (s *Store) UserRoles(ctx context.Context, userID string) ([]string, error) {
	if !isUUID(userID) {
		return []string{}, nil
	}

	roles, err := s.db.UserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(roles))
	for i := range roles {
		names[i] = roles[i].Name
	}

	return names, nil
}

func (s *Store) AddToRoles(ctx context.Context, userID string, roles []string) error {
	ids, err := s.roleIDs(ctx, roles)
	if err != nil {
		return err
	}

	return s.db.AddUserRoles(ctx, userID, ids)
}

func (s *Store) RemoveFromRoles(ctx context.Context, userID string, roles []string) error {
	ids, err := s.roleIDs(ctx, roles)
	if err != nil {
		return err
	}

	return s.db.RemoveUserRoles(ctx, userID, ids)
}

// IsInRole reports role membership, comparing role names without regard to case.
func (s *Store) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	names, err := s.UserRoles(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, name := range names {
		if strings.EqualFold(name, role) {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) Roles(ctx context.Context) ([]blog.Role, error) {
	roles, err := s.db.Roles(ctx)
	if err != nil {
		return nil, err
	}

	return blog.NewRoles(roles), nil
}

func (s *Store) FindRoleByID(ctx context.Context, id string) (*blog.Role, error) {
	if !isUUID(id) {
		return nil, nil
	}

	return toRole(s.db.RoleByID(ctx, id))
}

func (s *Store) CreateRole(ctx context.Context, name, description string) (*blog.Role, error) {
	existing, err := s.db.RoleByName(ctx, name)
	if err != nil {
		return nil, err
	} else if existing != nil {
		return nil, blog.IdentityErrors{duplicateRoleName(name)}
	}

	created, err := s.db.CreateRole(ctx, &db.Role{ID: uuid.NewString(), Name: name, Description: description})
	if errors.Is(err, db.ErrConflict) {
		return nil, blog.IdentityErrors{duplicateRoleName(name)}
	}

	return toRole(created, err)
}

// UpdateRole renames the role. It returns nil, nil for unknown ids.
func (s *Store) UpdateRole(ctx context.Context, id, name, description string) (*blog.Role, error) {
	if !isUUID(id) {
		return nil, nil
	}

	existing, err := s.db.RoleByName(ctx, name)
	if err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, blog.IdentityErrors{duplicateRoleName(name)}
	}

	updated, err := s.db.UpdateRole(ctx, &db.Role{ID: id, Name: name, Description: description})
	if errors.Is(err, db.ErrConflict) {
		return nil, blog.IdentityErrors{duplicateRoleName(name)}
	}

	return toRole(updated, err)
}

func (s *Store) DeleteRole(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	return s.db.DeleteRole(ctx, id)
}

func (s *Store) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// checkUnique reports user name and email collisions with users other than selfID.
func (s *Store) checkUnique(ctx context.Context, selfID, username, email string) (blog.IdentityErrors, error) {
	var errs blog.IdentityErrors

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, blog.IdentityError{Code: blog.CodeInvalidEmail, Description: fmt.Sprintf("Email '%s' is invalid.", email)})
	}

	byName, err := s.db.UserByName(ctx, username)
	if err != nil {
		return nil, err
	} else if byName != nil && byName.ID != selfID {
		errs = append(errs, duplicateUserName(username))
	}

	byEmail, err := s.db.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	} else if byEmail != nil && byEmail.ID != selfID {
		errs = append(errs, blog.IdentityError{Code: blog.CodeDuplicateEmail, Description: fmt.Sprintf("Email '%s' is already taken.", email)})
	}

	return errs, nil
}

// roleIDs resolves role names, failing with RoleNotFound for unknown names.
func (s *Store) roleIDs(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		role, err := s.db.RoleByName(ctx, name)
		if err != nil {
			return nil, err
		} else if role == nil {
			return nil, blog.IdentityErrors{{Code: blog.CodeRoleNotFound, Description: fmt.Sprintf("Role %s does not exist.", name)}}
		}
		ids = append(ids, role.ID)
	}

	return ids, nil
}

func duplicateUserName(name string) blog.IdentityError {
	return blog.IdentityError{Code: blog.CodeDuplicateUserName, Description: fmt.Sprintf("Username '%s' is already taken.", name)}
}

func duplicateRoleName(name string) blog.IdentityError {
	return blog.IdentityError{Code: blog.CodeDuplicateRoleName, Description: fmt.Sprintf("Role name '%s' is already taken.", name)}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func toUser(u *db.User, err error) (*blog.User, error) {
	if err != nil || u == nil {
		return nil, err
	}

	user := blog.NewUser(u)
	return &user, nil
}

func toRole(r *db.Role, err error) (*blog.Role, error) {
	if err != nil || r == nil {
		return nil, err
	}

	role := blog.NewRole(r)
	return &role, nil
}

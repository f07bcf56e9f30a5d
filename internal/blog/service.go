package blog

import "context"

type PostService interface {
	ListAll(ctx context.Context, filter PostFilter) ([]Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	GetByID(ctx context.Context, id int) (*Post, error)
	Details(ctx context.Context, id int) (*PostDetails, error)
	Create(ctx context.Context, in PostInput) (*Post, error)
	Update(ctx context.Context, id int, in PostInput) (*Post, error)
	Delete(ctx context.Context, id int) error
	RecordView(ctx context.Context, id int) (int, error)
}

type TagService interface {
	ListAll(ctx context.Context) ([]Tag, error)
	GetByID(ctx context.Context, id int) (*Tag, error)
	Create(ctx context.Context, name string) (*Tag, error)
	Update(ctx context.Context, id int, in TagInput) (*Tag, error)
	Delete(ctx context.Context, id int) error
}

type CommentService interface {
	ListAll(ctx context.Context) ([]Comment, error)
	ListByPost(ctx context.Context, postID int) ([]Comment, error)
	GetByID(ctx context.Context, id int) (*Comment, error)
	Create(ctx context.Context, in CommentInput) (*Comment, error)
	Update(ctx context.Context, id int, in CommentInput) (*Comment, error)
	Delete(ctx context.Context, id int) error
}

type RoleService interface {
	ListAll(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id string) (*Role, error)
	Create(ctx context.Context, in RoleInput) (*Role, error)
	Update(ctx context.Context, id string, in RoleInput) (*Role, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	ListAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetForEdit(ctx context.Context, id string) (*UserEdit, error)
	Update(ctx context.Context, id string, in UserUpdate) (*User, error)
	Register(ctx context.Context, in Registration) (*User, error)
	Authenticate(ctx context.Context, login, password string) (*User, error)
	IsInRole(ctx context.Context, userID, role string) (bool, error)
}

// Identity manages accounts, credentials and role membership.
// Getters return nil, nil for unknown ids. Rejected writes are reported as IdentityErrors.
type Identity interface {
	Users(ctx context.Context) ([]User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByLogin(ctx context.Context, login string) (*User, error)
	CreateUser(ctx context.Context, in Registration) (*User, error)
	UpdateUser(ctx context.Context, id, username, email string) (*User, error)
	ResetPassword(ctx context.Context, id, password string) error
	CheckPassword(user *User, password string) bool

	UserRoles(ctx context.Context, userID string) ([]string, error)
	AddToRoles(ctx context.Context, userID string, roles []string) error
	RemoveFromRoles(ctx context.Context, userID string, roles []string) error
	IsInRole(ctx context.Context, userID, role string) (bool, error)

	Roles(ctx context.Context) ([]Role, error)
	FindRoleByID(ctx context.Context, id string) (*Role, error)
	CreateRole(ctx context.Context, name, description string) (*Role, error)
	UpdateRole(ctx context.Context, id, name, description string) (*Role, error)
	DeleteRole(ctx context.Context, id string) (bool, error)

	// InTransaction runs fn against an Identity bound to one storage transaction.
	InTransaction(ctx context.Context, fn func(Identity) error) error
}

// Services groups the application services consumed by the transports.
type Services struct {
	Posts    PostService
	Tags     TagService
	Comments CommentService
	Roles    RoleService
	Users    UserService
}

// Package blogtest provides configurable stand-ins for the blog services.
package blogtest

import (
	"context"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

var (
	_ blog.PostService    = (*Posts)(nil)
	_ blog.TagService     = (*Tags)(nil)
	_ blog.CommentService = (*Comments)(nil)
	_ blog.RoleService    = (*Roles)(nil)
	_ blog.UserService    = (*Users)(nil)
)

// Posts implements blog.PostService by delegating to its function fields.
type Posts struct {
	ListAllFn    func(ctx context.Context, filter blog.PostFilter) ([]blog.Post, error)
	CountFn      func(ctx context.Context, filter blog.PostFilter) (int, error)
	GetByIDFn    func(ctx context.Context, id int) (*blog.Post, error)
	DetailsFn    func(ctx context.Context, id int) (*blog.PostDetails, error)
	CreateFn     func(ctx context.Context, in blog.PostInput) (*blog.Post, error)
	UpdateFn     func(ctx context.Context, id int, in blog.PostInput) (*blog.Post, error)
	DeleteFn     func(ctx context.Context, id int) error
	RecordViewFn func(ctx context.Context, id int) (int, error)
}

func (s *Posts) ListAll(ctx context.Context, filter blog.PostFilter) ([]blog.Post, error) {
	return s.ListAllFn(ctx, filter)
}

func (s *Posts) Count(ctx context.Context, filter blog.PostFilter) (int, error) {
	return s.CountFn(ctx, filter)
}

func (s *Posts) GetByID(ctx context.Context, id int) (*blog.Post, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *Posts) Details(ctx context.Context, id int) (*blog.PostDetails, error) {
	return s.DetailsFn(ctx, id)
}

func (s *Posts) Create(ctx context.Context, in blog.PostInput) (*blog.Post, error) {
	return s.CreateFn(ctx, in)
}

func (s *Posts) Update(ctx context.Context, id int, in blog.PostInput) (*blog.Post, error) {
	return s.UpdateFn(ctx, id, in)
}

func (s *Posts) Delete(ctx context.Context, id int) error {
	return s.DeleteFn(ctx, id)
}

func (s *Posts) RecordView(ctx context.Context, id int) (int, error) {
	return s.RecordViewFn(ctx, id)
}

type Tags struct {
	ListAllFn func(ctx context.Context) ([]blog.Tag, error)
	GetByIDFn func(ctx context.Context, id int) (*blog.Tag, error)
	CreateFn  func(ctx context.Context, name string) (*blog.Tag, error)
	UpdateFn  func(ctx context.Context, id int, in blog.TagInput) (*blog.Tag, error)
	DeleteFn  func(ctx context.Context, id int) error
}

func (s *Tags) ListAll(ctx context.Context) ([]blog.Tag, error) { return s.ListAllFn(ctx) }

func (s *Tags) GetByID(ctx context.Context, id int) (*blog.Tag, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *Tags) Create(ctx context.Context, name string) (*blog.Tag, error) {
	return s.CreateFn(ctx, name)
}

func (s *Tags) Update(ctx context.Context, id int, in blog.TagInput) (*blog.Tag, error) {
	return s.UpdateFn(ctx, id, in)
}

func (s *Tags) Delete(ctx context.Context, id int) error { return s.DeleteFn(ctx, id) }

type Comments struct {
	ListAllFn    func(ctx context.Context) ([]blog.Comment, error)
	ListByPostFn func(ctx context.Context, postID int) ([]blog.Comment, error)
	GetByIDFn    func(ctx context.Context, id int) (*blog.Comment, error)
	CreateFn     func(ctx context.Context, in blog.CommentInput) (*blog.Comment, error)
	UpdateFn     func(ctx context.Context, id int, in blog.CommentInput) (*blog.Comment, error)
	DeleteFn     func(ctx context.Context, id int) error
}

func (s *Comments) ListAll(ctx context.Context) ([]blog.Comment, error) { return s.ListAllFn(ctx) }

func (s *Comments) ListByPost(ctx context.Context, postID int) ([]blog.Comment, error) {
	return s.ListByPostFn(ctx, postID)
}

func (s *Comments) GetByID(ctx context.Context, id int) (*blog.Comment, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *Comments) Create(ctx context.Context, in blog.CommentInput) (*blog.Comment, error) {
	return s.CreateFn(ctx, in)
}

func (s *Comments) Update(ctx context.Context, id int, in blog.CommentInput) (*blog.Comment, error) {
	return s.UpdateFn(ctx, id, in)
}

func (s *Comments) Delete(ctx context.Context, id int) error { return s.DeleteFn(ctx, id) }

type Roles struct {
	ListAllFn func(ctx context.Context) ([]blog.Role, error)
	GetByIDFn func(ctx context.Context, id string) (*blog.Role, error)
	CreateFn  func(ctx context.Context, in blog.RoleInput) (*blog.Role, error)
	UpdateFn  func(ctx context.Context, id string, in blog.RoleInput) (*blog.Role, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (s *Roles) ListAll(ctx context.Context) ([]blog.Role, error) { return s.ListAllFn(ctx) }

func (s *Roles) GetByID(ctx context.Context, id string) (*blog.Role, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *Roles) Create(ctx context.Context, in blog.RoleInput) (*blog.Role, error) {
	return s.CreateFn(ctx, in)
}

func (s *Roles) Update(ctx context.Context, id string, in blog.RoleInput) (*blog.Role, error) {
	return s.UpdateFn(ctx, id, in)
}

func (s *Roles) Delete(ctx context.Context, id string) error { return s.DeleteFn(ctx, id) }

// Users implements blog.UserService. A nil IsInRoleFn reports no membership.
type Users struct {
	ListAllFn      func(ctx context.Context) ([]blog.User, error)
	GetByIDFn      func(ctx context.Context, id string) (*blog.User, error)
	GetForEditFn   func(ctx context.Context, id string) (*blog.UserEdit, error)
	UpdateFn       func(ctx context.Context, id string, in blog.UserUpdate) (*blog.User, error)
	RegisterFn     func(ctx context.Context, in blog.Registration) (*blog.User, error)
	AuthenticateFn func(ctx context.Context, login, password string) (*blog.User, error)
	IsInRoleFn     func(ctx context.Context, userID, role string) (bool, error)
}

func (s *Users) ListAll(ctx context.Context) ([]blog.User, error) { return s.ListAllFn(ctx) }

func (s *Users) GetByID(ctx context.Context, id string) (*blog.User, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *Users) GetForEdit(ctx context.Context, id string) (*blog.UserEdit, error) {
	return s.GetForEditFn(ctx, id)
}

func (s *Users) Update(ctx context.Context, id string, in blog.UserUpdate) (*blog.User, error) {
	return s.UpdateFn(ctx, id, in)
}

func (s *Users) Register(ctx context.Context, in blog.Registration) (*blog.User, error) {
	return s.RegisterFn(ctx, in)
}

func (s *Users) Authenticate(ctx context.Context, login, password string) (*blog.User, error) {
	return s.AuthenticateFn(ctx, login, password)
}

func (s *Users) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	if s.IsInRoleFn == nil {
		return false, nil
	}
	return s.IsInRoleFn(ctx, userID, role)
}

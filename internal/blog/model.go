package blog

import (
	"github.com/daniilsolovey/blog-portal/internal/db"
)

// Role names known to the application.
const (
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
	RoleUser      = "User"
)

type User struct {
	db.User
	Roles []string
}

type Role struct {
	db.Role
}

type Tag struct {
	db.Tag
}

type Post struct {
	db.Post
	Tags []Tag
}

type Comment struct {
	db.Comment
}

// PostDetails is a post as shown on its detail page.
type PostDetails struct {
	Post
	Comments []Comment
}

type PostFilter struct {
	TagID    *int
	AuthorID *string
	Page     int
	PageSize int
}

type PostInput struct {
	Title    string
	Summary  string
	Content  string
	AuthorID string
	TagIDs   []int
}

// CommentInput describes a comment write. ID, when non-zero on update, must match the target comment.
type CommentInput struct {
	ID       int
	Content  string
	PostID   int
	AuthorID string
}

// TagInput describes a tag write. ID, when non-zero on update, must match the target tag.
type TagInput struct {
	ID   int
	Name string
}

type RoleInput struct {
	Name        string
	Description string
}

type Registration struct {
	Username string
	Email    string
	Password string
}

// UserUpdate is an administrative change of a user account. Empty Password keeps the current one.
type UserUpdate struct {
	Username    string
	Email       string
	Password    string
	IsUser      bool
	IsAdmin     bool
	IsModerator bool
}

// UserEdit is the editable view of a user account.
type UserEdit struct {
	ID          string
	Username    string
	Email       string
	IsUser      bool
	IsAdmin     bool
	IsModerator bool
}

func (u UserUpdate) roleNames() []string {
	var names []string
	if u.IsAdmin {
		names = append(names, RoleAdmin)
	}
	if u.IsModerator {
		names = append(names, RoleModerator)
	}
	if u.IsUser {
		names = append(names, RoleUser)
	}
	return names
}

// HasRole reports whether the user is a member of role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

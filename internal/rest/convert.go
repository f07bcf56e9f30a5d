package rest

import (
	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewAuthor(u *db.User) *Author {
	if u == nil {
		return nil
	}

	return &Author{
		UserID:   u.ID,
		UserName: u.UserName,
	}
}

func NewTag(t blog.Tag) Tag {
	return Tag{
		TagID: t.ID,
		Name:  t.Name,
	}
}

func NewPost(p blog.Post) Post {
	return Post{
		PostID:    p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		ViewCount: p.ViewCount,
		AuthorID:  p.AuthorID,
		Author:    NewAuthor(p.Author),
		Tags:      Map(p.Tags, NewTag),
	}
}

func NewPostSummary(p blog.Post) PostSummary {
	return PostSummary{
		PostID:    p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		CreatedAt: p.CreatedAt,
		ViewCount: p.ViewCount,
		AuthorID:  p.AuthorID,
		Author:    NewAuthor(p.Author),
		Tags:      Map(p.Tags, NewTag),
	}
}

func NewPostDetails(d blog.PostDetails) PostDetails {
	return PostDetails{
		Post:     NewPost(d.Post),
		Comments: Map(d.Comments, NewComment),
	}
}

func NewComment(c blog.Comment) Comment {
	return Comment{
		CommentID: c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Author:    NewAuthor(c.Author),
	}
}

func NewRole(r blog.Role) Role {
	return Role{
		RoleID:      r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// NewUser never exposes the password hash.
func NewUser(u blog.User) User {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}

	return User{
		UserID:    u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Roles:     roles,
	}
}

func NewUserEdit(u blog.UserEdit) UserEdit {
	return UserEdit{
		UserID:      u.ID,
		UserName:    u.Username,
		Email:       u.Email,
		IsUser:      u.IsUser,
		IsAdmin:     u.IsAdmin,
		IsModerator: u.IsModerator,
	}
}

func (r PostsRequest) filter() blog.PostFilter {
	f := blog.PostFilter{
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.TagID != 0 {
		f.TagID = &r.TagID
	}
	if r.AuthorID != "" {
		f.AuthorID = &r.AuthorID
	}
	return f
}

func (r PostRequest) input(authorID string) blog.PostInput {
	return blog.PostInput{
		Title:    r.Title,
		Summary:  r.Summary,
		Content:  r.Content,
		AuthorID: authorID,
		TagIDs:   r.TagIDs,
	}
}

func (r CommentRequest) input(authorID string) blog.CommentInput {
	return blog.CommentInput{
		ID:       r.CommentID,
		Content:  r.Content,
		PostID:   r.PostID,
		AuthorID: authorID,
	}
}

func (r UserUpdateRequest) update() blog.UserUpdate {
	return blog.UserUpdate{
		Username:    r.UserName,
		Email:       r.Email,
		Password:    r.Password,
		IsUser:      r.IsUser,
		IsAdmin:     r.IsAdmin,
		IsModerator: r.IsModerator,
	}
}

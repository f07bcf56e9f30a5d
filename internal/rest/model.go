package rest

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type Author struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type Tag struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
}

type Post struct {
	PostID    int       `json:"postId"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int       `json:"viewCount"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	Tags      []Tag     `json:"tags"`
}

type PostSummary struct {
	PostID    int       `json:"postId"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int       `json:"viewCount"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	Tags      []Tag     `json:"tags"`
}

type PostDetails struct {
	Post
	Comments []Comment `json:"comments"`
}

type Comment struct {
	CommentID int       `json:"commentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    int       `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
}

type Role struct {
	RoleID      string `json:"roleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type User struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Roles     []string  `json:"roles"`
}

type UserEdit struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	IsUser      bool   `json:"isUser"`
	IsAdmin     bool   `json:"isAdmin"`
	IsModerator bool   `json:"isModerator"`
}

// PostsRequest is the query of GET /api/posts, decoded with urlstruct.
type PostsRequest struct {
	TagID    int    `urlstruct:"tag_id"`
	AuthorID string `urlstruct:"author_id"`
	Page     int    `urlstruct:"page"`
	PageSize int    `urlstruct:"page_size"`
}

type PostRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	TagIDs  []int  `json:"tagIds"`
}

type CommentRequest struct {
	CommentID int    `json:"commentId"`
	Content   string `json:"content"`
	PostID    int    `json:"postId"`
}

type TagRequest struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
}

type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserUpdateRequest struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsUser      bool   `json:"isUser"`
	IsAdmin     bool   `json:"isAdmin"`
	IsModerator bool   `json:"isModerator"`
}

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

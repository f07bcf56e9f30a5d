package blog

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	MaxTitleLength           = 100
	MaxSummaryLength         = 300
	MaxTagNameLength         = 50
	MaxRoleNameLength        = 50
	MaxRoleDescriptionLength = 200
	MinPasswordLength        = 6
	MaxPasswordLength        = 100
	MaxUserNameLength        = 256
)

var contentPolicy = bluemonday.UGCPolicy()

// sanitize strips markup that is not safe to render back to readers.
func sanitize(s string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(s))
}

type validator struct {
	ValidationError
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
		return false
	}
	return true
}

func (v *validator) maxLen(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

func (v *validator) lenBetween(field, value string, min, max int) {
	if n := utf8.RuneCountInString(value); n < min || n > max {
		v.Add(field, fmt.Sprintf("%s must be between %d and %d characters", field, min, max))
	}
}

func (v *validator) email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.Add(field, field+" is not a valid email address")
	}
}

func (v *validator) err() error {
	return v.ValidationError.OrNil()
}

func normalizePost(in PostInput) PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.Content = sanitize(in.Content)
	return in
}

func validatePost(in PostInput) error {
	var v validator
	if v.required("title", in.Title) {
		v.maxLen("title", in.Title, MaxTitleLength)
	}
	if v.required("summary", in.Summary) {
		v.maxLen("summary", in.Summary, MaxSummaryLength)
	}
	v.required("content", in.Content)
	return v.err()
}

func validateComment(in CommentInput) error {
	var v validator
	v.required("content", in.Content)
	if in.PostID <= 0 {
		v.Add("postId", "postId is required")
	}
	return v.err()
}

func validateTagName(name string) error {
	var v validator
	if v.required("name", name) {
		v.maxLen("name", name, MaxTagNameLength)
	}
	return v.err()
}

func validateRole(in RoleInput) error {
	var v validator
	if v.required("name", in.Name) {
		v.maxLen("name", in.Name, MaxRoleNameLength)
	}
	if v.required("description", in.Description) {
		v.maxLen("description", in.Description, MaxRoleDescriptionLength)
	}
	return v.err()
}

func validateUserUpdate(in UserUpdate) error {
	var v validator
	if v.required("username", in.Username) {
		v.maxLen("username", in.Username, MaxUserNameLength)
	}
	if v.required("email", in.Email) {
		v.email("email", in.Email)
	}
	if in.Password != "" {
		v.lenBetween("password", in.Password, MinPasswordLength, MaxPasswordLength)
	}
	return v.err()
}

func validateRegistration(in Registration) error {
	var v validator
	if v.required("username", in.Username) {
		v.maxLen("username", in.Username, MaxUserNameLength)
	}
	if v.required("email", in.Email) {
		v.email("email", in.Email)
	}
	if v.required("password", in.Password) {
		v.lenBetween("password", in.Password, MinPasswordLength, MaxPasswordLength)
	}
	return v.err()
}

// Package seed fills the database with the built-in roles, the default accounts and
// optional demo content. Every step skips rows that already exist, so it can be rerun.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Account is a default user created by the seeder.
type Account struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

var (
	Roles = []blog.RoleInput{
		{Name: blog.RoleAdmin, Description: "Manages users, roles and all content"},
		{Name: blog.RoleModerator, Description: "Edits and removes posts and comments of other users"},
		{Name: blog.RoleUser, Description: "Writes posts and comments"},
	}

	Accounts = []Account{
		{Username: "admin", Email: "admin@example.com", Password: "Admin@123", Roles: []string{blog.RoleAdmin}},
		{Username: "moderator", Email: "moderator@example.com", Password: "Moderator@123", Roles: []string{blog.RoleModerator}},
		{Username: "user", Email: "user@example.com", Password: "User@123", Roles: []string{blog.RoleUser}},
	}

	demoTags = []string{"go", "postgres", "web", "devops", "testing", "news"}
)

type Seeder struct {
	identity blog.Identity
	posts    blog.PostService
	tags     blog.TagService
	comments blog.CommentService
	log      *slog.Logger
	faker    *gofakeit.Faker
}

// New returns a seeder. seed makes demo content reproducible; 0 picks a random seed.
func New(identity blog.Identity, s blog.Services, log *slog.Logger, seed int64) *Seeder {
	return &Seeder{
		identity: identity,
		posts:    s.Posts,
		tags:     s.Tags,
		comments: s.Comments,
		log:      log,
		faker:    gofakeit.New(seed),
	}
}

// Roles creates the built-in roles that are missing.
func (s *Seeder) Roles(ctx context.Context) error {
	existing, err := s.identity.Roles(ctx)
	if err != nil {
		return fmt.Errorf("get roles: %w", err)
	}

	for _, r := range Roles {
		if slices.ContainsFunc(existing, func(e blog.Role) bool { return strings.EqualFold(e.Name, r.Name) }) {
			continue
		}

		if _, err := s.identity.CreateRole(ctx, r.Name, r.Description); err != nil {
			return fmt.Errorf("create role %s: %w", r.Name, err)
		}
		s.log.Info("role created", "name", r.Name)
	}

	return nil
}

// Users creates the default accounts that are missing and grants their roles.
func (s *Seeder) Users(ctx context.Context) error {
	for _, a := range Accounts {
		user, err := s.identity.FindUserByLogin(ctx, a.Email)
		if err != nil {
			return fmt.Errorf("find user %s: %w", a.Email, err)
		}

		if user == nil {
			user, err = s.identity.CreateUser(ctx, blog.Registration{Username: a.Username, Email: a.Email, Password: a.Password})
			if err != nil {
				return fmt.Errorf("create user %s: %w", a.Email, err)
			}
			s.log.Info("user created", "email", a.Email)
		}

		granted, err := s.identity.UserRoles(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("get roles of %s: %w", a.Email, err)
		}

		var missing []string
		for _, role := range a.Roles {
			if !slices.Contains(granted, role) {
				missing = append(missing, role)
			}
		}
		if len(missing) == 0 {
			continue
		}

		if err := s.identity.AddToRoles(ctx, user.ID, missing); err != nil {
			return fmt.Errorf("grant roles to %s: %w", a.Email, err)
		}
	}

	return nil
}

// Demo creates the demo tags and count posts with comments, written by the default accounts.
func (s *Seeder) Demo(ctx context.Context, count int) error {
	tagIDs, err := s.demoTags(ctx)
	if err != nil {
		return err
	}

	var authors []string
	for _, a := range Accounts {
		user, err := s.identity.FindUserByLogin(ctx, a.Email)
		if err != nil {
			return fmt.Errorf("find user %s: %w", a.Email, err)
		} else if user == nil {
			return fmt.Errorf("default account %s is missing, seed users first", a.Email)
		}
		authors = append(authors, user.ID)
	}

	for range count {
		post, err := s.posts.Create(ctx, s.demoPost(authors, tagIDs))
		if err != nil {
			return fmt.Errorf("create demo post: %w", err)
		}

		for range s.faker.IntRange(0, 4) {
			_, err := s.comments.Create(ctx, blog.CommentInput{
				Content:  s.faker.Sentence(s.faker.IntRange(5, 20)),
				PostID:   post.ID,
				AuthorID: authors[s.faker.IntRange(0, len(authors)-1)],
			})
			if err != nil {
				return fmt.Errorf("create demo comment: %w", err)
			}
		}
	}
	s.log.Info("demo content created", "posts", count, "tags", len(tagIDs))

	return nil
}

func (s *Seeder) demoTags(ctx context.Context) ([]int, error) {
	existing, err := s.tags.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	byName := make(map[string]int, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.Name)] = t.ID
	}

	ids := make([]int, 0, len(demoTags))
	for _, name := range demoTags {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}

		tag, err := s.tags.Create(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create tag %s: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}

	return ids, nil
}

func (s *Seeder) demoPost(authors []string, tagIDs []int) blog.PostInput {
	paragraphs := make([]string, s.faker.IntRange(2, 5))
	for i := range paragraphs {
		paragraphs[i] = "<p>" + s.faker.Paragraph(1, 4, 12, " ") + "</p>"
	}

	tags := slices.Clone(tagIDs)
	s.faker.ShuffleAnySlice(tags)

	return blog.PostInput{
		Title:    strings.TrimSuffix(s.faker.Sentence(s.faker.IntRange(3, 8)), "."),
		Summary:  s.faker.Sentence(s.faker.IntRange(10, 25)),
		Content:  strings.Join(paragraphs, "\n"),
		AuthorID: authors[s.faker.IntRange(0, len(authors)-1)],
		TagIDs:   tags[:s.faker.IntRange(0, min(3, len(tags)))],
	}
}

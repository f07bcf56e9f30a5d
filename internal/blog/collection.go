package blog

import "github.com/daniilsolovey/blog-portal/internal/db"

type Posts []Post

func (ll Posts) IDs() []int {
	ids := make([]int, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}

// SetTags attaches association rows to the posts they belong to.
// Posts without rows get an empty, non-nil tag list.
func (ll Posts) SetTags(rows []db.PostTag) {
	byPost := make(map[int][]Tag, len(ll))
	for i := range rows {
		if rows[i].Tag == nil {
			continue
		}
		byPost[rows[i].PostID] = append(byPost[rows[i].PostID], NewTag(rows[i].Tag))
	}

	for i := range ll {
		tags := byPost[ll[i].ID]
		if tags == nil {
			tags = []Tag{}
		}
		ll[i].Tags = tags
	}
}

type Users []User

func (ll Users) IDs() []string {
	ids := make([]string, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}

// SetRoles attaches role names from membership rows to the users they belong to.
func (ll Users) SetRoles(rows []db.UserRole) {
	byUser := make(map[string][]string, len(ll))
	for i := range rows {
		if rows[i].Role == nil {
			continue
		}
		byUser[rows[i].UserID] = append(byUser[rows[i].UserID], rows[i].Role.Name)
	}

	for i := range ll {
		roles := byUser[ll[i].ID]
		if roles == nil {
			roles = []string{}
		}
		ll[i].Roles = roles
	}
}

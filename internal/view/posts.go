package view

import (
	"github.com/brgysanantonio/portal/internal/models"
)

// PostCard is an announcement prepared for display.
type PostCard struct {
	models.Post
	DateDisplay string
	HasImage    bool
}

// PostsView is the data passed to the announcements template.
type PostsView struct {
	Cards       []PostCard
	Empty       bool
	Placeholder string
}

// BuildPostsView prepares announcement cards. An empty list yields a
// placeholder message instead of an empty feed.
func BuildPostsView(posts []models.Post) PostsView {
	if len(posts) == 0 {
		return PostsView{
			Empty:       true,
			Placeholder: "No announcements yet. Check back soon!",
		}
	}

	v := PostsView{Cards: make([]PostCard, 0, len(posts))}
	for _, p := range posts {
		v.Cards = append(v.Cards, PostCard{
			Post:        p,
			DateDisplay: p.CreatedAt.Format("Jan 02, 2006"),
			HasImage:    p.ImageURL != nil && *p.ImageURL != "",
		})
	}
	return v
}

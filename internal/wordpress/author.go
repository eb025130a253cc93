package wordpress

import (
	"encoding/json"
	"fmt"
)

// rawAuthor covers both historical author shapes: team members expose an
// avatar_urls map keyed by pixel size, co-authors a plain avatar URL.
type rawAuthor struct {
	ID          int               `json:"id"`
	Slug        string            `json:"slug"`
	Username    string            `json:"username"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Avatar      string            `json:"avatar"`
	AvatarURLs  map[string]string `json:"avatar_urls"`
}

// ReduceAuthor converts one author object of either shape.
func ReduceAuthor(raw json.RawMessage) (*Author, error) {
	var a rawAuthor
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode author: %w", err)
	}
	if a.ID == 0 {
		return nil, &MalformedDataError{Resource: "author", Slug: a.Slug, Field: "id"}
	}

	slug := a.Slug
	if slug == "" {
		slug = a.Username
	}
	avatar := a.Avatar
	if avatar == "" {
		avatar = a.AvatarURLs["96"]
	}
	return &Author{
		ID:          a.ID,
		Slug:        slug,
		Name:        decode(a.Name),
		Title:       decode(a.Title),
		Description: decode(a.Description),
		Avatar:      avatar,
	}, nil
}

// ReduceComment converts one comment.
func ReduceComment(raw json.RawMessage) (*Comment, error) {
	var c struct {
		ID               int               `json:"id"`
		Parent           int               `json:"parent"`
		Author           int               `json:"author"`
		AuthorName       string            `json:"author_name"`
		AuthorAvatarURLs map[string]string `json:"author_avatar_urls"`
		Date             string            `json:"date"`
		Content          renderedText      `json:"content"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode comment: %w", err)
	}
	if c.ID == 0 {
		return nil, &MalformedDataError{Resource: "comment", Field: "id"}
	}
	return &Comment{
		ID:           c.ID,
		ParentID:     c.Parent,
		AuthorID:     c.Author,
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatarURLs["96"],
		Date:         isoDate(c.Date),
		Content:      decode(c.Content.Rendered),
	}, nil
}

package wordpress

import (
	"encoding/json"
	"fmt"
)

// ReduceSettings converts the REST root payload.
func ReduceSettings(raw json.RawMessage) (*Settings, error) {
	var s struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		URL         string `json:"url"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &Settings{
		Name:        decode(s.Name),
		Description: decode(s.Description),
		URL:         s.URL,
	}, nil
}

// ReduceLocation converts one location taxonomy term.
func ReduceLocation(raw json.RawMessage) (*Location, error) {
	var l struct {
		ID          int    `json:"id"`
		Parent      int    `json:"parent"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode location: %w", err)
	}
	if l.ID == 0 {
		return nil, &MalformedDataError{Resource: "location", Slug: l.Slug, Field: "id"}
	}
	return &Location{
		ID:          l.ID,
		ParentID:    l.Parent,
		Name:        decode(l.Name),
		Slug:        l.Slug,
		Description: decode(l.Description),
	}, nil
}

// ReduceValue converts one value term with its embedded icon.
func ReduceValue(raw json.RawMessage) (*Value, error) {
	var v struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		Embedded    struct {
			Icon []json.RawMessage `json:"icon"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	if v.ID == 0 {
		return nil, &MalformedDataError{Resource: "value", Slug: v.Slug, Field: "id"}
	}
	image, err := reduceEmbeddedMedia(v.Embedded.Icon)
	if err != nil {
		return nil, err
	}
	return &Value{
		ID:          v.ID,
		Name:        decode(v.Name),
		Slug:        v.Slug,
		Description: decode(v.Description),
		Image:       image,
	}, nil
}

// ReduceCategory converts one category term. Logo media ids are kept for
// lazy resolution; only top-level categories carry logos.
func ReduceCategory(raw json.RawMessage) (*Category, error) {
	var c struct {
		ID          int    `json:"id"`
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Parent      int    `json:"parent"`
		LogoYellow  any    `json:"logo_yellow"`
		LogoWhite   any    `json:"logo_white"`
		LogoBlack   any    `json:"logo_black"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	if c.ID == 0 {
		return nil, &MalformedDataError{Resource: "category", Slug: c.Slug, Field: "id"}
	}
	if c.Slug == "" {
		return nil, &MalformedDataError{Resource: "category", ID: c.ID, Field: "slug"}
	}

	cat := &Category{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        decode(c.Name),
		Description: decode(c.Description),
		ParentID:    c.Parent,
	}
	if c.Parent == 0 {
		cat.LogoYellowID = toInt(c.LogoYellow)
		cat.LogoWhiteID = toInt(c.LogoWhite)
		cat.LogoBlackID = toInt(c.LogoBlack)
	}
	return cat, nil
}

// rawTerm is an embedded wp:term entry.
type rawTerm struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// filterTags flattens embedded term groups and keeps post tags only.
func filterTags(groups [][]rawTerm) []Tag {
	var tags []Tag
	for _, group := range groups {
		for _, term := range group {
			if term.Taxonomy != "post_tag" {
				continue
			}
			tags = append(tags, Tag{ID: term.ID, Slug: term.Slug, Name: decode(term.Name)})
		}
	}
	return tags
}

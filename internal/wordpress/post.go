package wordpress

import (
	"encoding/json"
	"fmt"
	"slices"
)

// TopPostsTagID is the fixed tag marking "top" posts in the CMS.
const TopPostsTagID = 1246

type rawPost struct {
	ID         int          `json:"id"`
	Slug       string       `json:"slug"`
	Title      renderedText `json:"title"`
	Date       string       `json:"date"`
	Modified   string       `json:"modified"`
	Content    renderedText `json:"content"`
	Tags       []int        `json:"tags"`
	Categories []int        `json:"categories"`
	TopCats    []int        `json:"top_categories"`
	Meta       struct {
		LinkFiche []int `json:"link_fiche"`
	} `json:"meta"`
	CoAuthors  []json.RawMessage `json:"coauthors"`
	AuthorMeta struct {
		DisplayName string `json:"display_name"`
	} `json:"author_meta"`
	Embedded struct {
		FeaturedMedia []json.RawMessage `json:"wp:featuredmedia"`
		Terms         [][]rawTerm       `json:"wp:term"`
	} `json:"_embedded"`
	rawSeo
}

// ReducePost converts one full post.
func ReducePost(raw json.RawMessage) (*Post, error) {
	var p rawPost
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	if p.ID == 0 {
		return nil, &MalformedDataError{Resource: "post", Slug: p.Slug, Field: "id"}
	}
	if p.Slug == "" {
		return nil, &MalformedDataError{Resource: "post", ID: p.ID, Field: "slug"}
	}

	image, err := reduceEmbeddedMedia(p.Embedded.FeaturedMedia)
	if err != nil {
		return nil, err
	}

	var authors []Author
	for _, rawCo := range p.CoAuthors {
		author, err := ReduceAuthor(rawCo)
		if err != nil {
			return nil, err
		}
		authors = append(authors, *author)
	}

	return &Post{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      decode(p.Title.Rendered),
		Date:       isoDate(p.Date),
		Modified:   isoDate(p.Modified),
		Content:    decode(p.Content.Rendered),
		IsTop:      slices.Contains(p.Tags, TopPostsTagID),
		CategoryID: firstID(p.TopCats, p.Categories),
		FicheIDs:   p.Meta.LinkFiche,
		Tags:       filterTags(p.Embedded.Terms),
		Image:      image,
		Authors:    authors,
		Seo:        p.rawSeo.reduce(),
	}, nil
}

// ReducePostCard converts one list-view post payload (restricted by
// _fields, so most of rawPost is absent).
func ReducePostCard(raw json.RawMessage) (*PostCard, error) {
	var p rawPost
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode post card: %w", err)
	}
	if p.ID == 0 {
		return nil, &MalformedDataError{Resource: "post", Slug: p.Slug, Field: "id"}
	}
	if p.Slug == "" {
		return nil, &MalformedDataError{Resource: "post", ID: p.ID, Field: "slug"}
	}

	image, err := reduceEmbeddedMedia(p.Embedded.FeaturedMedia)
	if err != nil {
		return nil, err
	}

	return &PostCard{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      decode(p.Title.Rendered),
		Date:       isoDate(p.Date),
		Modified:   isoDate(p.Modified),
		AuthorName: p.AuthorMeta.DisplayName,
		IsTop:      slices.Contains(p.Tags, TopPostsTagID),
		CategoryID: firstID(p.TopCats, p.Categories),
		Image:      image,
	}, nil
}

// firstID returns the first id of the first non-empty list.
func firstID(lists ...[]int) int {
	for _, ids := range lists {
		if len(ids) > 0 {
			return ids[0]
		}
	}
	return 0
}

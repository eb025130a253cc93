package wordpress

import (
	"encoding/json"
	"fmt"
)

// ReducePage converts one static page.
func ReducePage(raw json.RawMessage) (*Page, error) {
	var p struct {
		ID       int          `json:"id"`
		Slug     string       `json:"slug"`
		Title    renderedText `json:"title"`
		Date     string       `json:"date"`
		Modified string       `json:"modified"`
		Content  renderedText `json:"content"`
		rawSeo
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	if p.ID == 0 {
		return nil, &MalformedDataError{Resource: "page", Slug: p.Slug, Field: "id"}
	}
	if p.Slug == "" {
		return nil, &MalformedDataError{Resource: "page", ID: p.ID, Field: "slug"}
	}
	return &Page{
		ID:       p.ID,
		Slug:     p.Slug,
		Title:    decode(p.Title.Rendered),
		Date:     isoDate(p.Date),
		Modified: isoDate(p.Modified),
		Content:  decode(p.Content.Rendered),
		Seo:      p.rawSeo.reduce(),
	}, nil
}

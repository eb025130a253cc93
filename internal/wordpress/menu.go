package wordpress

import (
	"encoding/json"
	"fmt"
)

// MenuRef is the id/name pair from the menu list endpoint; the full menu
// (including items) requires a second per-id call.
type MenuRef struct {
	ID int
}

// ReduceMenuRefs extracts menu ids from the list endpoint payload.
func ReduceMenuRefs(raw json.RawMessage) ([]MenuRef, error) {
	var list []struct {
		TermID int `json:"term_id"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode menu list: %w", err)
	}
	refs := make([]MenuRef, 0, len(list))
	for _, m := range list {
		if m.TermID == 0 {
			continue
		}
		refs = append(refs, MenuRef{ID: m.TermID})
	}
	return refs, nil
}

// ReduceMenu converts one full menu payload. Items with an object type the
// clients cannot navigate (anything but page or category) are dropped.
func ReduceMenu(raw json.RawMessage) (*Menu, []MenuItem, error) {
	var m struct {
		TermID int    `json:"term_id"`
		Name   string `json:"name"`
		Slug   string `json:"slug"`
		Items  []struct {
			ObjectID any    `json:"object_id"`
			Object   string `json:"object"`
			Slug     string `json:"slug"`
			Title    string `json:"title"`
			URL      string `json:"url"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("decode menu: %w", err)
	}
	if m.TermID == 0 {
		return nil, nil, &MalformedDataError{Resource: "menu", Slug: m.Slug, Field: "term_id"}
	}

	menu := &Menu{ID: m.TermID, Name: decode(m.Name), Slug: m.Slug}
	var dropped []MenuItem
	for _, item := range m.Items {
		entry := MenuItem{
			ID:    toInt(item.ObjectID),
			Type:  item.Object,
			Slug:  item.Slug,
			Title: decode(item.Title),
			URL:   item.URL,
		}
		if item.Object != MenuItemTypePage && item.Object != MenuItemTypeCategory {
			dropped = append(dropped, entry)
			continue
		}
		menu.Items = append(menu.Items, entry)
	}
	return menu, dropped, nil
}

package wordpress

import (
	"encoding/json"
	"testing"
)

func TestReduceMenuRefs(t *testing.T) {
	refs, err := ReduceMenuRefs(json.RawMessage(`[
		{"term_id": 2, "name": "Header"},
		{"term_id": 0, "name": "broken"},
		{"term_id": 5, "name": "Footer"}
	]`))
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != 2 || refs[1].ID != 5 {
		t.Fatalf("unexpected refs %+v", refs)
	}
}

func TestReduceMenuDropsUnnavigableItems(t *testing.T) {
	menu, dropped, err := ReduceMenu(json.RawMessage(`{
		"term_id": 2,
		"name": "Header",
		"slug": "header",
		"items": [
			{"object_id": "11", "object": "page", "slug": "equipe", "title": "L'&eacute;quipe", "url": "/equipe"},
			{"object_id": 8, "object": "category", "slug": "food", "title": "Food", "url": "/food"},
			{"object_id": 99, "object": "custom", "slug": "", "title": "Lien", "url": "https://ailleurs"}
		]
	}`))
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if len(menu.Items) != 2 {
		t.Fatalf("expected 2 navigable items, got %d", len(menu.Items))
	}
	if menu.Items[0].ID != 11 {
		t.Fatalf("string object_id should coerce, got %d", menu.Items[0].ID)
	}
	if menu.Items[0].Title != "L'équipe" {
		t.Fatalf("title should be entity-decoded, got %q", menu.Items[0].Title)
	}
	if len(dropped) != 1 || dropped[0].Type != "custom" {
		t.Fatalf("unexpected dropped items %+v", dropped)
	}
}

func TestReduceMenuRequiresTermID(t *testing.T) {
	if _, _, err := ReduceMenu(json.RawMessage(`{"name": "broken"}`)); err == nil {
		t.Fatal("menu without term_id should be rejected")
	}
}

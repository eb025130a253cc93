package wordpress

import (
	"encoding/json"
	"testing"
)

func TestReducePost(t *testing.T) {
	post, err := ReducePost(json.RawMessage(`{
		"id": 301,
		"slug": "les-meilleurs-brunchs",
		"title": {"rendered": "Les meilleurs brunchs"},
		"date": "2024-05-12T09:30:00",
		"modified": "2024-05-13T08:00:00",
		"content": {"rendered": "<p>texte</p>"},
		"tags": [12, 1246],
		"categories": [8],
		"top_categories": [3],
		"meta": {"link_fiche": [101, 102]},
		"coauthors": [{"id": 9, "username": "claire", "name": "Claire"}],
		"_embedded": {
			"wp:term": [
				[{"id": 8, "slug": "food", "name": "Food", "taxonomy": "category"}],
				[{"id": 12, "slug": "brunch", "name": "Brunch", "taxonomy": "post_tag"}]
			]
		}
	}`))
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if !post.IsTop {
		t.Fatal("post tagged 1246 should be top")
	}
	if post.CategoryID != 3 {
		t.Fatalf("top_categories should win over categories, got %d", post.CategoryID)
	}
	if len(post.FicheIDs) != 2 {
		t.Fatalf("expected 2 linked fiches, got %d", len(post.FicheIDs))
	}
	if len(post.Tags) != 1 || post.Tags[0].Slug != "brunch" {
		t.Fatalf("only post_tag terms should survive, got %+v", post.Tags)
	}
	if len(post.Authors) != 1 || post.Authors[0].Slug != "claire" {
		t.Fatalf("co-author username should become the slug, got %+v", post.Authors)
	}
	if post.Date != "2024-05-12T09:30:00Z" {
		t.Fatalf("date should normalize to RFC 3339, got %q", post.Date)
	}
}

func TestReducePostCategoryFallback(t *testing.T) {
	post, err := ReducePost(json.RawMessage(`{
		"id": 302, "slug": "sans-top", "title": {"rendered": "T"},
		"tags": [12],
		"categories": [8, 9]
	}`))
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if post.IsTop {
		t.Fatal("untagged post should not be top")
	}
	if post.CategoryID != 8 {
		t.Fatalf("expected fallback to first category, got %d", post.CategoryID)
	}
}

func TestReducePostCard(t *testing.T) {
	card, err := ReducePostCard(json.RawMessage(`{
		"id": 303,
		"slug": "carte",
		"title": {"rendered": "Carte &amp; co"},
		"date": "2024-01-02T12:00:00",
		"tags": [1246],
		"categories": [4],
		"author_meta": {"display_name": "Claire"}
	}`))
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if card.Title != "Carte & co" {
		t.Fatalf("unexpected title %q", card.Title)
	}
	if !card.IsTop || card.CategoryID != 4 || card.AuthorName != "Claire" {
		t.Fatalf("unexpected card %+v", card)
	}
}

func TestFirstID(t *testing.T) {
	if got := firstID(nil, []int{7, 8}); got != 7 {
		t.Fatalf("expected first id of first non-empty list, got %d", got)
	}
	if got := firstID(nil, nil); got != 0 {
		t.Fatalf("expected 0 for all-empty lists, got %d", got)
	}
}

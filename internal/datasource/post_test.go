package datasource

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestPostGetLatestPostsExcludesTop(t *testing.T) {
	services, rec := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	if _, err := services.Post.GetLatestPosts(context.Background(), 4); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	q := rec.callsTo("/wp/v2/posts")[0].Query()
	if q.Get("tags_exclude") != "1246" || q.Get("per_page") != "4" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("_embed") != "wp:featuredmedia" {
		t.Fatalf("cards should only embed the featured media, got %q", q.Get("_embed"))
	}
}

func TestPostGetLatestWithStickyFillsWithoutDuplicates(t *testing.T) {
	services, rec := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sticky") == "true" {
			fmt.Fprint(w, `[{"id": 1, "slug": "sticky-1", "title": {"rendered": "S1"}},
				{"id": 2, "slug": "sticky-2", "title": {"rendered": "S2"}}]`)
			return
		}
		fmt.Fprint(w, `[{"id": 3, "slug": "p3", "title": {"rendered": "P3"}},
			{"id": 4, "slug": "p4", "title": {"rendered": "P4"}}]`)
	}))

	cards, err := services.Post.GetLatestWithSticky(context.Background(), 4)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	if cards[0].ID != 1 || cards[1].ID != 2 {
		t.Fatalf("sticky posts must come first, got %+v", cards)
	}

	calls := rec.callsTo("/wp/v2/posts")
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	fill := calls[1].Query()
	if fill.Get("exclude") != "1,2" {
		t.Fatalf("fill call must exclude the sticky ids, got %q", fill.Get("exclude"))
	}
	if fill.Get("per_page") != "2" {
		t.Fatalf("fill call should only request the remainder, got %q", fill.Get("per_page"))
	}
}

func TestPostGetLatestWithStickySkipsFillWhenFull(t *testing.T) {
	services, rec := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "slug": "s1", "title": {"rendered": "S1"}},
			{"id": 2, "slug": "s2", "title": {"rendered": "S2"}}]`)
	}))

	cards, err := services.Post.GetLatestWithSticky(context.Background(), 2)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if rec.count() != 1 {
		t.Fatalf("no fill call needed when sticky posts fill the page, got %d calls", rec.count())
	}
}

func TestPostGetTopCardsStickyFirst(t *testing.T) {
	services, rec := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sticky") == "true" {
			fmt.Fprint(w, `[{"id": 10, "slug": "top-sticky", "title": {"rendered": "TS"}}]`)
			return
		}
		fmt.Fprint(w, `[{"id": 11, "slug": "top-1", "title": {"rendered": "T1"}}]`)
	}))

	cards, err := services.Post.GetTopCards(context.Background(), 2, true)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != 10 {
		t.Fatalf("unexpected cards %+v", cards)
	}

	calls := rec.callsTo("/wp/v2/posts")
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	for _, call := range calls {
		if call.Query().Get("tags") != "1246" {
			t.Fatalf("top lookups must filter on the top tag, got %v", call.Query())
		}
	}
	if calls[1].Query().Get("exclude") != "10" {
		t.Fatalf("fill must exclude the sticky card, got %q", calls[1].Query().Get("exclude"))
	}
}

func TestPostFindCards(t *testing.T) {
	services, rec := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "1")
		w.Header().Set("X-WP-TotalPages", "1")
		fmt.Fprint(w, `[{"id": 5, "slug": "p5", "title": {"rendered": "P5"}}]`)
	}))

	page, err := services.Post.FindCards(context.Background(), PostQuery{
		Category: "food",
		Asc:      true,
		TopOnly:  true,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.HasMore {
		t.Fatal("single page should not report more")
	}

	q := rec.callsTo("/wp/v2/posts")[0].Query()
	if q.Get("category") != "food" || q.Get("order") != "asc" || q.Get("tags") != "1246" {
		t.Fatalf("unexpected query %v", q)
	}
}

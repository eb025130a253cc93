package datasource

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestYoastGetRedirectsSkipsMalformed(t *testing.T) {
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-rest-yoast-meta/v1/redirects" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `["/ancien /nouveau 301", "cassé", "/a/ /b/ 302"]`)
	}))

	redirects, err := services.Yoast.GetRedirects(context.Background())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(redirects) != 2 {
		t.Fatalf("malformed line should be skipped, got %d", len(redirects))
	}
	if redirects[1].From != "/a" || redirects[1].To != "/b" || redirects[1].Status != 302 {
		t.Fatalf("unexpected redirect %+v", redirects[1])
	}
}

func TestYoastGetHome(t *testing.T) {
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-rest-yoast-meta/v1/home" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"yoast_title": "Accueil"}`)
	}))

	seo, err := services.Yoast.GetHome(context.Background())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if seo == nil || seo.Title != "Accueil" {
		t.Fatalf("unexpected seo %+v", seo)
	}
}

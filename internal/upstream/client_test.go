package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chouquette-gateway/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, logging.Discard()), server
}

func TestGetMemoizedWithinOperation(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"ok":true}`))
	})

	ctx := WithRequestCache(context.Background())
	for i := 0; i < 5; i++ {
		if _, err := client.Get(ctx, "/wp/v2/categories", nil); err != nil {
			t.Fatalf("get failed: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestGetMemoDistinguishesParams(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	})

	ctx := WithRequestCache(context.Background())
	a := url.Values{}
	a.Set("page", "1")
	b := url.Values{}
	b.Set("page", "2")
	client.Get(ctx, "/wp/v2/posts", a)
	client.Get(ctx, "/wp/v2/posts", b)
	client.Get(ctx, "/wp/v2/posts", a)

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestConcurrentGetsShareOneCall(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte(`{"id":1}`))
	})

	ctx := WithRequestCache(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Get(ctx, "/wp/v2/media/1", nil); err != nil {
				t.Errorf("get failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call for 10 concurrent gets, got %d", got)
	}
}

func TestNoMemoWithoutRequestCache(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	client.Get(ctx, "/wp/v2/settings", nil)
	client.Get(ctx, "/wp/v2/settings", nil)

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls without a request cache, got %d", got)
	}
}

func TestPostInvalidatesMemoizedGet(t *testing.T) {
	var gets atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
		}
		w.Write([]byte(`{}`))
	})

	ctx := WithRequestCache(context.Background())
	client.Get(ctx, "/wp/v2/comments", nil)
	client.Get(ctx, "/wp/v2/comments", nil)
	if _, err := client.Post(ctx, "/wp/v2/comments", map[string]string{"content": "hi"}); err != nil {
		t.Fatalf("post failed: %v", err)
	}
	client.Get(ctx, "/wp/v2/comments", nil)

	if got := gets.Load(); got != 2 {
		t.Fatalf("expected the post to invalidate the memo (2 gets), got %d", got)
	}
}

func TestStatusErrorClassification(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
		w.Write([]byte(`{"message":"recaptcha validation failed"}`))
	})

	_, err := client.Post(context.Background(), "/wp/v2/fiches/1/contact", map[string]string{})
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if upErr.Kind != KindInvalidInput {
		t.Fatalf("412 should classify as invalid input, got %v", upErr.Kind)
	}
	if upErr.Error() != "recaptcha validation failed" {
		t.Fatalf("invalid input should echo the upstream message, got %q", upErr.Error())
	}
	ext := upErr.Extensions()
	if ext["code"] != "BAD_USER_INPUT" {
		t.Fatalf("expected BAD_USER_INPUT, got %v", ext["code"])
	}
	if ext["upstreamStatus"] != http.StatusPreconditionFailed {
		t.Fatalf("expected upstreamStatus 412, got %v", ext["upstreamStatus"])
	}
}

func TestServerErrorIsOpaque(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database exploded"}`))
	})

	_, err := client.Get(context.Background(), "/wp/v2/posts", nil)
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if upErr.Kind != KindUpstreamFailure {
		t.Fatalf("500 should classify as upstream failure, got %v", upErr.Kind)
	}
	if upErr.Error() != "upstream request failed" {
		t.Fatalf("failure message must stay opaque, got %q", upErr.Error())
	}
	if upErr.Extensions()["code"] != "UPSTREAM_ERROR" {
		t.Fatalf("expected UPSTREAM_ERROR, got %v", upErr.Extensions()["code"])
	}
}

func TestObserverFiresOnlyForPerformedCalls(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client.OnRequest(func(method string, status int, _ time.Duration) {
		calls.Add(1)
	})

	ctx := WithRequestCache(context.Background())
	client.Get(ctx, "/wp/v2/tags", nil)
	client.Get(ctx, "/wp/v2/tags", nil)

	if got := calls.Load(); got != 1 {
		t.Fatalf("memoized hit must not fire the observer, got %d calls", got)
	}
}

func TestGetWithHeaderExposesPagination(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "42")
		w.Header().Set("X-WP-TotalPages", "5")
		w.Write([]byte(`[]`))
	})

	resp, err := client.GetWithHeader(context.Background(), "/wp/v2/fiches", nil)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if resp.Header.Get("X-Wp-Total") != "42" {
		t.Fatalf("expected total header, got %q", resp.Header.Get("X-Wp-Total"))
	}
	if resp.Header.Get("X-Wp-Totalpages") != "5" {
		t.Fatalf("expected total pages header, got %q", resp.Header.Get("X-Wp-Totalpages"))
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/cache"
	"chouquette-gateway/internal/datasource"
	"chouquette-gateway/internal/logging"
	"chouquette-gateway/internal/metrics"
	"chouquette-gateway/internal/ratelimit"
	"chouquette-gateway/internal/resolver"
	"chouquette-gateway/internal/schema"
	"chouquette-gateway/internal/upstream"
)

// newTestServer builds a full gateway over a fake upstream and returns the
// HTTP handler plus the upstream call counter.
func newTestServer(t *testing.T, upstreamHandler http.Handler, opts Options) (http.Handler, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		upstreamHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(fake.Close)

	client := upstream.NewClient(fake.URL, 5*time.Second, logging.Discard())
	services := datasource.NewServices(client, logging.Discard(), 100)

	sdl, err := schema.Merge()
	if err != nil {
		t.Fatalf("schema merge failed: %v", err)
	}
	gqlSchema, err := graphql.ParseSchema(sdl, resolver.New(services))
	if err != nil {
		t.Fatalf("schema parse failed: %v", err)
	}
	return New(gqlSchema, logging.Discard(), opts).Handler(), &calls
}

func settingsUpstream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `{"name": "Chouquette", "url": "https://chouquette.ch"}`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})
}

func postQuery(t *testing.T, handler http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReady(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{})
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReadyFailsWhenUpstreamDown(t *testing.T) {
	handler, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "maintenance"}`, http.StatusServiceUnavailable)
	}), Options{})
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGraphQLQuery(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{})
	w := postQuery(t, handler, `{ settings { name } }`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Settings struct{ Name string }
		}
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Settings.Name != "Chouquette" {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
}

func TestGraphQLRejectsMissingQuery(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGraphQLGetRequest(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{})
	req := httptest.NewRequest(http.MethodGet, "/graphql?query="+
		"%7B%20settings%20%7B%20name%20%7D%20%7D", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRateLimitReturns429(t *testing.T) {
	handler, _ := newTestServer(t, settingsUpstream(), Options{
		Limiter: ratelimit.New(2),
		Metrics: metrics.NewCollector(),
	})

	for i := 0; i < 2; i++ {
		if w := postQuery(t, handler, `{ settings { name } }`); w.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, w.Code)
		}
	}
	w := postQuery(t, handler, `{ settings { name } }`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 must carry a Retry-After header")
	}
}

func TestResponseCacheServesRepeatQueries(t *testing.T) {
	collector := metrics.NewCollector()
	handler, calls := newTestServer(t, settingsUpstream(), Options{
		Metrics:       collector,
		ResponseCache: cache.NewMemory(),
		CacheTTL:      time.Minute,
	})

	first := postQuery(t, handler, `{ settings { name } }`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request failed: %d", first.Code)
	}
	upstreamCalls := calls.Load()

	second := postQuery(t, handler, `{ settings { name } }`)
	if second.Code != http.StatusOK {
		t.Fatalf("second request failed: %d", second.Code)
	}
	if calls.Load() != upstreamCalls {
		t.Fatalf("cached repeat must not hit upstream, got %d extra calls", calls.Load()-upstreamCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("cached response must match the original")
	}
	if collector.Snapshot().CacheHits != 1 {
		t.Fatalf("expected 1 recorded cache hit, got %d", collector.Snapshot().CacheHits)
	}
}

func TestMutationsAreNeverCached(t *testing.T) {
	handler, calls := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1}`)
	}), Options{
		ResponseCache: cache.NewMemory(),
		CacheTTL:      time.Minute,
	})

	mutation := `mutation { commentPost(postId: 1, authorName: "V", authorEmail: "v@x.ch", content: "C", recaptcha: "r") }`
	postQuery(t, handler, mutation)
	before := calls.Load()
	postQuery(t, handler, mutation)
	if calls.Load() == before {
		t.Fatal("a repeated mutation must reach upstream again")
	}
}

func TestFailedResponsesAreNotCached(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	handler, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"name": "Chouquette", "url": "https://chouquette.ch"}`)
	}), Options{
		ResponseCache: cache.NewMemory(),
		CacheTTL:      time.Minute,
	})

	w := postQuery(t, handler, `{ settings { name } }`)
	if !strings.Contains(w.Body.String(), "errors") {
		t.Fatalf("expected an error response, got %s", w.Body.String())
	}

	failing.Store(false)
	w = postQuery(t, handler, `{ settings { name } }`)
	if strings.Contains(w.Body.String(), "errors") {
		t.Fatalf("error response must not be cached, got %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector()
	handler, _ := newTestServer(t, settingsUpstream(), Options{Metrics: collector})

	postQuery(t, handler, `{ settings { name } }`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "chouquette_requests_total") {
		t.Fatalf("expected request counter in metrics output:\n%s", body)
	}
}

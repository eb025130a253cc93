package datasource

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"chouquette-gateway/internal/logging"
	"chouquette-gateway/internal/upstream"
)

// recorder captures every upstream request so tests can assert on the exact
// paths and query parameters the services send.
type recorder struct {
	mu    sync.Mutex
	calls []*url.URL
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *req.URL
	r.calls = append(r.calls, &u)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) callsTo(path string) []*url.URL {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*url.URL
	for _, u := range r.calls {
		if u.Path == path {
			out = append(out, u)
		}
	}
	return out
}

func newTestServices(t *testing.T, handler http.Handler) (*Services, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec.record(req)
		handler.ServeHTTP(w, req)
	}))
	t.Cleanup(server.Close)
	client := upstream.NewClient(server.URL, 5*time.Second, logging.Discard())
	return NewServices(client, logging.Discard(), 100), rec
}

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		page, pageSize, max int
		wantPage, wantSize  int
	}{
		{0, 0, 100, 1, 10},
		{3, 24, 100, 3, 24},
		{1, 500, 100, 1, 100},
		{-1, 24, 0, 1, 24},
	}
	for _, tc := range cases {
		page, size := normalizePaging(tc.page, tc.pageSize, tc.max)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("normalizePaging(%d, %d, %d) = %d, %d; want %d, %d",
				tc.page, tc.pageSize, tc.max, page, size, tc.wantPage, tc.wantSize)
		}
	}
}

func TestPageInfoFromHeader(t *testing.T) {
	header := http.Header{}
	header.Set("X-Wp-Total", "42")
	header.Set("X-Wp-Totalpages", "5")

	info := pageInfoFromHeader(header, 2)
	if !info.HasMore || info.Total != 42 || info.TotalPages != 5 {
		t.Fatalf("unexpected page info %+v", info)
	}

	info = pageInfoFromHeader(header, 5)
	if info.HasMore {
		t.Fatal("last page must not report more")
	}
}

func TestIDListParams(t *testing.T) {
	params := idListParams([]int{7, 8, 9})
	if params.Get("include") != "7,8,9" {
		t.Fatalf("unexpected include %q", params.Get("include"))
	}
	if params.Get("per_page") != "3" {
		t.Fatalf("per_page should match the id count, got %q", params.Get("per_page"))
	}
}

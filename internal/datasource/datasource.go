// Package datasource groups the upstream endpoints into one service per
// resource family. Services share a single upstream client so per-operation
// memoization spans the whole resolution graph.
package datasource

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"chouquette-gateway/internal/upstream"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Services holds every upstream-facing service, explicitly typed so
// resolvers declare exactly which services they depend on.
type Services struct {
	Base       *BaseService
	Fiche      *FicheService
	Post       *PostService
	Page       *PageService
	Menu       *MenuService
	Chouquette *ChouquetteService
	Yoast      *YoastService
}

// NewServices wires all services around one shared client. maxPageSize caps
// caller-supplied page sizes; zero means no cap.
func NewServices(client *upstream.Client, logger *slog.Logger, maxPageSize int) *Services {
	return &Services{
		Base:       &BaseService{client: client, logger: logger},
		Fiche:      &FicheService{client: client, logger: logger, maxPageSize: maxPageSize},
		Post:       &PostService{client: client, logger: logger, maxPageSize: maxPageSize},
		Page:       &PageService{client: client, logger: logger},
		Menu:       &MenuService{client: client, logger: logger},
		Chouquette: &ChouquetteService{client: client, logger: logger},
		Yoast:      &YoastService{client: client, logger: logger},
	}
}

// PageInfo is the pagination metadata WordPress reports in response headers.
type PageInfo struct {
	HasMore    bool
	Total      int
	TotalPages int
}

func pageInfoFromHeader(header http.Header, page int) PageInfo {
	total, _ := strconv.Atoi(header.Get("X-Wp-Total"))
	totalPages, _ := strconv.Atoi(header.Get("X-Wp-Totalpages"))
	return PageInfo{
		HasMore:    page < totalPages,
		Total:      total,
		TotalPages: totalPages,
	}
}

func normalizePaging(page, pageSize, maxPageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// idListParams builds the include/per_page pair for fetch-by-ids calls.
// Callers must never pass an empty list; WordPress would return everything.
func idListParams(ids []int) url.Values {
	params := url.Values{}
	params.Set("include", joinInts(ids))
	params.Set("per_page", strconv.Itoa(len(ids)))
	return params
}

// reduceList converts a JSON array item by item. A malformed item is logged
// and dropped so one bad entity does not take down its siblings.
func reduceList[T any](logger *slog.Logger, raw []byte, resource string, reduce func(json.RawMessage) (*T, error)) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		entity, err := reduce(item)
		if err != nil {
			logger.Warn("dropping malformed item", "resource", resource, "error", err)
			continue
		}
		if entity == nil {
			continue
		}
		out = append(out, *entity)
	}
	return out, nil
}

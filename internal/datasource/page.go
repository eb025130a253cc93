package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

// PageService covers the /wp/v2/pages endpoint.
type PageService struct {
	client *upstream.Client
	logger *slog.Logger
}

// GetBySlug fetches one static page. An unknown slug yields nil, nil.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*wordpress.Page, error) {
	params := url.Values{}
	params.Set("slug", slug)
	body, err := s.client.Get(ctx, wpV2+"/pages", params)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode page list: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return wordpress.ReducePage(items[0])
}

package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

const yoastPath = "/wp-rest-yoast-meta/v1"

// YoastService covers the yoast-meta plugin endpoints.
type YoastService struct {
	client *upstream.Client
	logger *slog.Logger
}

// GetRedirects fetches the redirect rules. Malformed lines are logged and
// skipped.
func (s *YoastService) GetRedirects(ctx context.Context) ([]wordpress.Redirect, error) {
	body, err := s.client.Get(ctx, yoastPath+"/redirects", nil)
	if err != nil {
		return nil, err
	}
	var lines []string
	if err := json.Unmarshal(body, &lines); err != nil {
		return nil, fmt.Errorf("decode redirects: %w", err)
	}
	redirects := make([]wordpress.Redirect, 0, len(lines))
	for _, line := range lines {
		redirect, err := wordpress.ReduceRedirect(line)
		if err != nil {
			s.logger.Warn("skipping malformed redirect", "line", line, "error", err)
			continue
		}
		redirects = append(redirects, *redirect)
	}
	return redirects, nil
}

// GetHome fetches the home page SEO metadata.
func (s *YoastService) GetHome(ctx context.Context) (*wordpress.Seo, error) {
	body, err := s.client.Get(ctx, yoastPath+"/home", nil)
	if err != nil {
		return nil, err
	}
	return wordpress.ReduceSeo(body)
}

package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

const postsPath = wpV2 + "/posts"

var postCardFields = strings.Join([]string{
	"id",
	"slug",
	"title",
	"date",
	"modified",
	"author_meta.display_name",
	"tags",
	"categories",
	"top_categories",
	"featured_media",
	"_links.wp:featuredmedia",
}, ",")

// PostQuery is the filtered post search.
type PostQuery struct {
	Category string
	Search   string
	Asc      bool
	TopOnly  bool
	Page     int
	PageSize int
}

// PostPage is one page of post cards.
type PostPage struct {
	PostCards []wordpress.PostCard
	PageInfo
}

// PostService covers the /wp/v2/posts endpoints.
type PostService struct {
	client      *upstream.Client
	logger      *slog.Logger
	maxPageSize int
}

// GetBySlug fetches one full post. An unknown slug yields nil, nil.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*wordpress.Post, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode post list: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return wordpress.ReducePost(items[0])
}

func postCardParams() url.Values {
	params := url.Values{}
	params.Set("_fields", postCardFields)
	params.Set("_embed", "wp:featuredmedia")
	return params
}

// GetCardsByIDs fetches the given posts as cards in one call.
func (s *PostService) GetCardsByIDs(ctx context.Context, ids []int) ([]wordpress.PostCard, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	params := postCardParams()
	params.Set("include", joinInts(ids))
	params.Set("per_page", strconv.Itoa(len(ids)))
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "post", wordpress.ReducePostCard)
}

// GetCardsByTagIDs fetches up to six cards sharing the given tags, excluding
// the post they relate to. No tags means no related posts.
func (s *PostService) GetCardsByTagIDs(ctx context.Context, tagIDs []int, excludeID int) ([]wordpress.PostCard, error) {
	if len(tagIDs) == 0 {
		s.logger.Warn("post has no tags, skipping related lookup", "post", excludeID)
		return nil, nil
	}
	params := postCardParams()
	params.Set("tags", joinInts(tagIDs))
	params.Set("exclude", strconv.Itoa(excludeID))
	params.Set("per_page", "6")
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "post", wordpress.ReducePostCard)
}

// GetLatestPosts fetches the latest n post cards, top posts excluded.
func (s *PostService) GetLatestPosts(ctx context.Context, n int) ([]wordpress.PostCard, error) {
	params := postCardParams()
	params.Set("per_page", strconv.Itoa(n))
	params.Set("tags_exclude", strconv.Itoa(wordpress.TopPostsTagID))
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "post", wordpress.ReducePostCard)
}

// GetTopCards fetches n top-tagged post cards. With stickyFirst, sticky
// posts come first and the remainder is filled without duplicating them.
func (s *PostService) GetTopCards(ctx context.Context, n int, stickyFirst bool) ([]wordpress.PostCard, error) {
	var cards []wordpress.PostCard
	if stickyFirst {
		params := postCardParams()
		params.Set("sticky", "true")
		params.Set("tags", strconv.Itoa(wordpress.TopPostsTagID))
		params.Set("per_page", strconv.Itoa(n))
		body, err := s.client.Get(ctx, postsPath, params)
		if err != nil {
			return nil, err
		}
		cards, err = reduceList(s.logger, body, "post", wordpress.ReducePostCard)
		if err != nil {
			return nil, err
		}
	}

	remaining := n - len(cards)
	if remaining <= 0 {
		return cards, nil
	}
	params := postCardParams()
	params.Set("tags", strconv.Itoa(wordpress.TopPostsTagID))
	params.Set("per_page", strconv.Itoa(remaining))
	if len(cards) > 0 {
		params.Set("exclude", joinInts(cardIDs(cards)))
	}
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	fill, err := reduceList(s.logger, body, "post", wordpress.ReducePostCard)
	if err != nil {
		return nil, err
	}
	return append(cards, fill...), nil
}

// GetLatestWithSticky fetches n latest post cards with sticky posts first,
// never duplicated by the fill query.
func (s *PostService) GetLatestWithSticky(ctx context.Context, n int) ([]wordpress.PostCard, error) {
	params := postCardParams()
	params.Set("sticky", "true")
	params.Set("per_page", strconv.Itoa(n))
	body, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	cards, err := reduceList(s.logger, body, "post", wordpress.ReducePostCard)
	if err != nil {
		return nil, err
	}

	remaining := n - len(cards)
	if remaining <= 0 {
		return cards, nil
	}
	params = postCardParams()
	params.Set("per_page", strconv.Itoa(remaining))
	if len(cards) > 0 {
		params.Set("exclude", joinInts(cardIDs(cards)))
	}
	body, err = s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	fill, err := reduceList(s.logger, body, "post", wordpress.ReducePostCard)
	if err != nil {
		return nil, err
	}
	return append(cards, fill...), nil
}

// FindCards searches post cards.
func (s *PostService) FindCards(ctx context.Context, query PostQuery) (*PostPage, error) {
	page, pageSize := normalizePaging(query.Page, query.PageSize, s.maxPageSize)

	params := postCardParams()
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Asc {
		params.Set("order", "asc")
	}
	if query.TopOnly {
		params.Set("tags", strconv.Itoa(wordpress.TopPostsTagID))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))

	resp, err := s.client.GetWithHeader(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	cards, err := reduceList(s.logger, resp.Body, "post", wordpress.ReducePostCard)
	if err != nil {
		return nil, err
	}
	return &PostPage{PostCards: cards, PageInfo: pageInfoFromHeader(resp.Header, page)}, nil
}

func cardIDs(cards []wordpress.PostCard) []int {
	ids := make([]int, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	return ids
}

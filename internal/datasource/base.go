package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

const wpV2 = "/wp/v2"

// BaseService covers the stock /wp/v2 resources plus the REST root.
type BaseService struct {
	client *upstream.Client
	logger *slog.Logger
}

// GetSettings fetches the site metadata from the REST root.
func (s *BaseService) GetSettings(ctx context.Context) (*wordpress.Settings, error) {
	body, err := s.client.Get(ctx, "/", nil)
	if err != nil {
		return nil, err
	}
	return wordpress.ReduceSettings(body)
}

// GetLocations lists non-empty location terms, most used first.
func (s *BaseService) GetLocations(ctx context.Context) ([]wordpress.Location, error) {
	params := url.Values{}
	params.Set("hide_empty", "true")
	params.Set("orderby", "count")
	params.Set("order", "desc")
	body, err := s.client.Get(ctx, wpV2+"/locations", params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "location", wordpress.ReduceLocation)
}

// GetValues lists value terms with their embedded icons.
func (s *BaseService) GetValues(ctx context.Context) ([]wordpress.Value, error) {
	params := url.Values{}
	params.Set("_embed", "icon")
	body, err := s.client.Get(ctx, wpV2+"/values", params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "value", wordpress.ReduceValue)
}

// GetCategories lists all categories.
func (s *BaseService) GetCategories(ctx context.Context) ([]wordpress.Category, error) {
	params := url.Values{}
	params.Set("per_page", "100")
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, wpV2+"/categories", params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "category", wordpress.ReduceCategory)
}

// GetCategoriesByIDs fetches the given categories in one call.
func (s *BaseService) GetCategoriesByIDs(ctx context.Context, ids []int) ([]wordpress.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	body, err := s.client.Get(ctx, wpV2+"/categories", idListParams(ids))
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "category", wordpress.ReduceCategory)
}

// GetMediaByID fetches one media entity. A zero id yields nil without an
// upstream call.
func (s *BaseService) GetMediaByID(ctx context.Context, id int) (*wordpress.Media, error) {
	if id == 0 {
		return nil, nil
	}
	body, err := s.client.Get(ctx, fmt.Sprintf("%s/media/%d", wpV2, id), nil)
	if err != nil {
		return nil, err
	}
	return wordpress.ReduceMedia(body)
}

// GetMediaByIDs fetches the given media entities in one batched call.
func (s *BaseService) GetMediaByIDs(ctx context.Context, ids []int) ([]wordpress.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	body, err := s.client.Get(ctx, wpV2+"/media", idListParams(ids))
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "media", wordpress.ReduceMedia)
}

// GetMediaForCategories fetches every category logo in a single media call.
func (s *BaseService) GetMediaForCategories(ctx context.Context) ([]wordpress.Media, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	var logoIDs []int
	for _, category := range categories {
		logoIDs = append(logoIDs, category.LogoIDs()...)
	}
	return s.GetMediaByIDs(ctx, logoIDs)
}

// GetCommentsByPost lists the comments of one post.
func (s *BaseService) GetCommentsByPost(ctx context.Context, postID int) ([]wordpress.Comment, error) {
	params := url.Values{}
	params.Set("post", strconv.Itoa(postID))
	params.Set("per_page", "100")
	body, err := s.client.Get(ctx, wpV2+"/comments", params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "comment", wordpress.ReduceComment)
}

// GetTeam lists the site's team members.
func (s *BaseService) GetTeam(ctx context.Context) ([]wordpress.Author, error) {
	body, err := s.client.Get(ctx, wpV2+"/team", nil)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "author", wordpress.ReduceAuthor)
}

// CommentInput is a new comment submission.
type CommentInput struct {
	PostID      int    `json:"post"`
	ParentID    int    `json:"parent"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
	Recaptcha   string `json:"recaptcha"`
}

// PostComment submits a comment. The upstream response is discarded; the
// caller only needs success or failure.
func (s *BaseService) PostComment(ctx context.Context, input CommentInput) error {
	_, err := s.client.Post(ctx, wpV2+"/comments", input)
	return err
}

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

const fichesPath = wpV2 + "/fiches"

// ficheCardFields restricts list responses to what a card needs.
var ficheCardFields = strings.Join([]string{
	"id",
	"slug",
	"title",
	"content.rendered",
	"info.chouquettise",
	"info.location",
	"values",
	"featured_media",
	"main_category.marker_icon",
	"main_category.id",
	"locations",
	"_links.wp:featuredmedia",
}, ",")

// TaxonomyFilter selects fiches carrying any of the given terms of one
// criteria taxonomy.
type TaxonomyFilter struct {
	Taxonomy string
	Values   []string
}

// FicheQuery is the filtered fiche search.
type FicheQuery struct {
	Category         string
	Location         string
	Search           string
	ChouquettiseOnly bool
	Filters          []TaxonomyFilter
	Page             int
	PageSize         int
}

// FichePage is one page of fiche cards.
type FichePage struct {
	Fiches []wordpress.FicheCard
	PageInfo
}

// FicheService covers the /wp/v2/fiches endpoints.
type FicheService struct {
	client      *upstream.Client
	logger      *slog.Logger
	maxPageSize int
}

// GetBySlug fetches one full fiche. An unknown slug yields nil, nil.
func (s *FicheService) GetBySlug(ctx context.Context, slug string) (*wordpress.Fiche, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode fiche list: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return wordpress.ReduceFiche(items[0])
}

// GetCardsByIDs fetches the given fiches as cards in one call.
func (s *FicheService) GetCardsByIDs(ctx context.Context, ids []int) ([]wordpress.FicheCard, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	params := idListParams(ids)
	params.Set("_fields", ficheCardFields)
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "fiche", wordpress.ReduceFicheCard)
}

// GetCardsByFilters searches fiche cards. Absent filters are omitted from
// the upstream query; criteria filters become repeated filter[taxonomy]
// parameters.
func (s *FicheService) GetCardsByFilters(ctx context.Context, query FicheQuery) (*FichePage, error) {
	page, pageSize := normalizePaging(query.Page, query.PageSize, s.maxPageSize)

	params := url.Values{}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.ChouquettiseOnly {
		params.Set("chouquettise", "only")
	}
	for _, filter := range query.Filters {
		params.Add("filter["+filter.Taxonomy+"]", strings.Join(filter.Values, ","))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("_fields", ficheCardFields)
	params.Set("_embed", "1")

	resp, err := s.client.GetWithHeader(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	cards, err := reduceList(s.logger, resp.Body, "fiche", wordpress.ReduceFicheCard)
	if err != nil {
		return nil, err
	}
	return &FichePage{Fiches: cards, PageInfo: pageInfoFromHeader(resp.Header, page)}, nil
}

// GetCardsBySearchText is a plain-text fiche search.
func (s *FicheService) GetCardsBySearchText(ctx context.Context, text string, page, pageSize int) (*FichePage, error) {
	page, pageSize = normalizePaging(page, pageSize, s.maxPageSize)

	params := url.Values{}
	params.Set("search", text)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("_fields", ficheCardFields)
	params.Set("_embed", "1")

	resp, err := s.client.GetWithHeader(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	cards, err := reduceList(s.logger, resp.Body, "fiche", wordpress.ReduceFicheCard)
	if err != nil {
		return nil, err
	}
	return &FichePage{Fiches: cards, PageInfo: pageInfoFromHeader(resp.Header, page)}, nil
}

// GetCardsByTagIDs fetches up to six cards sharing the given tags, excluding
// the fiche they relate to. No tags means no related fiches; the condition
// is logged and no upstream call is made.
func (s *FicheService) GetCardsByTagIDs(ctx context.Context, tagIDs []int, excludeID int) ([]wordpress.FicheCard, error) {
	if len(tagIDs) == 0 {
		s.logger.Warn("fiche has no tags, skipping related lookup", "fiche", excludeID)
		return nil, nil
	}
	params := url.Values{}
	params.Set("tags", joinInts(tagIDs))
	params.Set("exclude", strconv.Itoa(excludeID))
	params.Set("per_page", "6")
	params.Set("_fields", ficheCardFields)
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "fiche", wordpress.ReduceFicheCard)
}

// GetLatestChouquettises fetches the latest n certified fiches, full shape.
func (s *FicheService) GetLatestChouquettises(ctx context.Context, n int) ([]wordpress.Fiche, error) {
	params := url.Values{}
	params.Set("chouquettise", "only")
	params.Set("per_page", strconv.Itoa(n))
	params.Set("_embed", "1")
	body, err := s.client.Get(ctx, fichesPath, params)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "fiche", wordpress.ReduceFiche)
}

// FicheContactInput is a message to a fiche owner, or a data report.
type FicheContactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Recaptcha string `json:"recaptcha"`
}

// PostContact forwards a message to the fiche owner.
func (s *FicheService) PostContact(ctx context.Context, ficheID int, input FicheContactInput) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("%s/%d/contact", fichesPath, ficheID), input)
	return err
}

// PostReport reports outdated or wrong fiche data to the staff.
func (s *FicheService) PostReport(ctx context.Context, ficheID int, input FicheContactInput) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("%s/%d/report", fichesPath, ficheID), input)
	return err
}

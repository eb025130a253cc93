package datasource

import (
	"context"
	"fmt"
	"log/slog"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

const chouquettePath = "/chouquette/v1"

// ChouquetteService covers the site's own plugin endpoints.
type ChouquetteService struct {
	client *upstream.Client
	logger *slog.Logger
}

// GetTheme fetches the theme payload.
func (s *ChouquetteService) GetTheme(ctx context.Context) (*wordpress.Theme, error) {
	body, err := s.client.Get(ctx, chouquettePath+"/theme", nil)
	if err != nil {
		return nil, err
	}
	return wordpress.ReduceTheme(body)
}

// GetFiltersForCategory lists the criteria taxonomies of one category.
func (s *ChouquetteService) GetFiltersForCategory(ctx context.Context, categoryID int) ([]wordpress.Criteria, error) {
	body, err := s.client.Get(ctx, fmt.Sprintf("%s/criteria/category/%d", chouquettePath, categoryID), nil)
	if err != nil {
		return nil, err
	}
	return reduceList(s.logger, body, "criteria", wordpress.ReduceCriteria)
}

// GetFiltersForFiche fetches the criteria selected on one fiche. The
// endpoint nests criteria in groups; the result is flattened.
func (s *ChouquetteService) GetFiltersForFiche(ctx context.Context, ficheID int) ([]wordpress.Criteria, error) {
	body, err := s.client.Get(ctx, fmt.Sprintf("%s/criteria/fiche/%d", chouquettePath, ficheID), nil)
	if err != nil {
		return nil, err
	}
	return wordpress.ReduceCriteriaGroups(body)
}

// StaffContactInput is a message to the site staff.
type StaffContactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Recaptcha string `json:"recaptcha"`
}

// PostContact forwards a message to the staff.
func (s *ChouquetteService) PostContact(ctx context.Context, input StaffContactInput) error {
	_, err := s.client.Post(ctx, chouquettePath+"/contact", input)
	return err
}

package wordpress

import (
	"encoding/json"
	"fmt"
)

type rawCriteria struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
	Values   []struct {
		ID          int    `json:"id"`
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"values"`
}

func (c rawCriteria) reduce() Criteria {
	criteria := Criteria{
		ID:       c.ID,
		Name:     decode(c.Name),
		Taxonomy: c.Taxonomy,
	}
	for _, v := range c.Values {
		criteria.Terms = append(criteria.Terms, CriteriaTerm{
			ID:          v.ID,
			Slug:        v.Slug,
			Name:        decode(v.Name),
			Description: decode(v.Description),
		})
	}
	return criteria
}

// ReduceCriteria converts one criteria taxonomy with its terms.
func ReduceCriteria(raw json.RawMessage) (*Criteria, error) {
	var c rawCriteria
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode criteria: %w", err)
	}
	if c.Taxonomy == "" {
		return nil, &MalformedDataError{Resource: "criteria", ID: c.ID, Field: "taxonomy"}
	}
	criteria := c.reduce()
	return &criteria, nil
}

// ReduceCriteriaGroups converts a criteria payload that is either a flat
// array or the nested array-of-arrays shape the per-fiche endpoint and the
// _embedded block use. The result is always flat.
func ReduceCriteriaGroups(raw json.RawMessage) ([]Criteria, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var nested [][]rawCriteria
	if err := json.Unmarshal(raw, &nested); err == nil {
		var out []Criteria
		for _, group := range nested {
			for _, c := range group {
				if c.Taxonomy == "" {
					continue
				}
				out = append(out, c.reduce())
			}
		}
		return out, nil
	}

	var flat []rawCriteria
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode criteria groups: %w", err)
	}
	var out []Criteria
	for _, c := range flat {
		if c.Taxonomy == "" {
			continue
		}
		out = append(out, c.reduce())
	}
	return out, nil
}

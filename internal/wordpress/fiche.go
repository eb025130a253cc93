package wordpress

import (
	"encoding/json"
	"fmt"
)

type rawFicheLocation struct {
	Address      string `json:"address"`
	StreetName   string `json:"street_name"`
	StreetNumber any    `json:"street_number"`
	PostCode     any    `json:"post_code"`
	State        string `json:"state"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Lat          any    `json:"lat"`
	Lng          any    `json:"lng"`
}

type rawFicheInfo struct {
	Chouquettise any               `json:"chouquettise"`
	Mail         string            `json:"mail"`
	Telephone    string            `json:"telephone"`
	Website      string            `json:"website"`
	SnFacebook   string            `json:"sn_facebook"`
	SnInstagram  string            `json:"sn_instagram"`
	Cost         any               `json:"cost"`
	Openings     []string          `json:"openings"`
	Location     *rawFicheLocation `json:"location"`
}

type rawMainCategory struct {
	ID         int    `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Logo       string `json:"logo"`
	MarkerIcon string `json:"marker_icon"`
}

type rawFiche struct {
	ID           int              `json:"id"`
	Slug         string           `json:"slug"`
	Title        renderedText     `json:"title"`
	Date         string           `json:"date"`
	Content      renderedText     `json:"content"`
	Categories   []int            `json:"categories"`
	Locations    []int            `json:"locations"`
	Values       []int            `json:"values"`
	Tags         []int            `json:"tags"`
	LinkedPosts  []int            `json:"linked_posts"`
	Info         *rawFicheInfo    `json:"info"`
	MainCategory *rawMainCategory `json:"main_category"`
	Embedded     struct {
		FeaturedMedia []json.RawMessage `json:"wp:featuredmedia"`
		Criteria      []json.RawMessage `json:"criteria"`
	} `json:"_embedded"`
	rawSeo
}

func (f *rawFiche) require() error {
	if f.ID == 0 {
		return &MalformedDataError{Resource: "fiche", Slug: f.Slug, Field: "id"}
	}
	if f.Slug == "" {
		return &MalformedDataError{Resource: "fiche", ID: f.ID, Field: "slug"}
	}
	if f.Title.Rendered == "" {
		return &MalformedDataError{Resource: "fiche", ID: f.ID, Slug: f.Slug, Field: "title"}
	}
	return nil
}

func (i *rawFicheInfo) reduce() *FicheInfo {
	if i == nil {
		return nil
	}
	return &FicheInfo{
		Mail:      i.Mail,
		Telephone: i.Telephone,
		Website:   i.Website,
		Facebook:  i.SnFacebook,
		Instagram: i.SnInstagram,
		Cost:      toInt(i.Cost),
		Openings:  i.Openings,
	}
}

// reducePOI builds the geolocation block. The POI exists iff the upstream
// location exists; a nil location yields nil, never a partial POI.
func reducePOI(loc *rawFicheLocation, marker string) *FichePOI {
	if loc == nil {
		return nil
	}
	return &FichePOI{
		Address:  loc.Address,
		Street:   loc.StreetName,
		Number:   toInt(loc.StreetNumber),
		PostCode: toInt(loc.PostCode),
		State:    loc.State,
		City:     loc.City,
		Country:  loc.Country,
		Lat:      toFloat(loc.Lat),
		Lng:      toFloat(loc.Lng),
		Marker:   marker,
	}
}

// ReduceFiche converts one full fiche. id, slug and title are required;
// everything else upstream is treated as optional.
func ReduceFiche(raw json.RawMessage) (*Fiche, error) {
	var f rawFiche
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fiche: %w", err)
	}
	if err := f.require(); err != nil {
		return nil, err
	}

	image, err := reduceEmbeddedMedia(f.Embedded.FeaturedMedia)
	if err != nil {
		return nil, err
	}

	fiche := &Fiche{
		ID:            f.ID,
		Slug:          f.Slug,
		Title:         decode(f.Title.Rendered),
		Date:          isoDate(f.Date),
		Content:       decode(f.Content.Rendered),
		CategoryIDs:   f.Categories,
		LocationID:    firstID(f.Locations),
		ValueIDs:      f.Values,
		TagIDs:        f.Tags,
		LinkedPostIDs: f.LinkedPosts,
		Info:          f.Info.reduce(),
		Image:         image,
		Seo:           f.rawSeo.reduce(),
	}

	if f.Info != nil {
		fiche.IsChouquettise = toBool(f.Info.Chouquettise)
		if f.Info.Location != nil {
			fiche.Address = f.Info.Location.Address
		}
	}
	if f.MainCategory != nil {
		fiche.PrincipalCategoryID = f.MainCategory.ID
		fiche.Logo = &FicheLogo{
			Slug: f.MainCategory.Slug,
			Name: decode(f.MainCategory.Name),
			URL:  f.MainCategory.Logo,
		}
		if f.Info != nil {
			fiche.POI = reducePOI(f.Info.Location, f.MainCategory.MarkerIcon)
		}
	} else if f.Info != nil {
		fiche.POI = reducePOI(f.Info.Location, "")
	}

	if len(f.Embedded.Criteria) > 0 {
		criteria, err := ReduceCriteriaGroups(f.Embedded.Criteria[0])
		if err != nil {
			return nil, err
		}
		fiche.Criteria = criteria
	}

	return fiche, nil
}

// ReduceFicheCard converts one list-view fiche payload.
func ReduceFicheCard(raw json.RawMessage) (*FicheCard, error) {
	var f rawFiche
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fiche card: %w", err)
	}
	if err := f.require(); err != nil {
		return nil, err
	}

	image, err := reduceEmbeddedMedia(f.Embedded.FeaturedMedia)
	if err != nil {
		return nil, err
	}

	card := &FicheCard{
		ID:         f.ID,
		Slug:       f.Slug,
		Title:      decode(f.Title.Rendered),
		Content:    decode(f.Content.Rendered),
		LocationID: firstID(f.Locations),
		ValueIDs:   f.Values,
		Image:      image,
	}
	if f.Info != nil {
		card.IsChouquettise = toBool(f.Info.Chouquettise)
	}
	if f.MainCategory != nil {
		card.PrincipalCategoryID = f.MainCategory.ID
		if f.Info != nil {
			card.POI = reducePOI(f.Info.Location, f.MainCategory.MarkerIcon)
		}
	} else if f.Info != nil {
		card.POI = reducePOI(f.Info.Location, "")
	}
	return card, nil
}

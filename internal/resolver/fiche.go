package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/datasource"
	"chouquette-gateway/internal/wordpress"
)

type ficheResolver struct {
	f        *wordpress.Fiche
	services *datasource.Services
}

func (r *ficheResolver) ID() graphql.ID            { return intID(r.f.ID) }
func (r *ficheResolver) Slug() string              { return r.f.Slug }
func (r *ficheResolver) Title() string             { return r.f.Title }
func (r *ficheResolver) Date() string              { return r.f.Date }
func (r *ficheResolver) Content() *string          { return strptr(r.f.Content) }
func (r *ficheResolver) IsChouquettise() bool      { return r.f.IsChouquettise }
func (r *ficheResolver) Address() *string          { return strptr(r.f.Address) }
func (r *ficheResolver) PrincipalCategoryID() *int32 {
	return int32ptr(r.f.PrincipalCategoryID)
}
func (r *ficheResolver) CategoryIDs() *[]int32 { return nullable(int32list(r.f.CategoryIDs)) }
func (r *ficheResolver) LocationID() *int32    { return int32ptr(r.f.LocationID) }
func (r *ficheResolver) ValueIDs() *[]int32    { return nullable(int32list(r.f.ValueIDs)) }

func (r *ficheResolver) Info() *ficheInfoResolver {
	if r.f.Info == nil {
		return nil
	}
	return &ficheInfoResolver{i: *r.f.Info}
}

func (r *ficheResolver) Logo() *ficheLogoResolver {
	if r.f.Logo == nil {
		return nil
	}
	return &ficheLogoResolver{l: *r.f.Logo}
}

func (r *ficheResolver) Image() *mediaResolver { return newMediaResolver(r.f.Image) }

func (r *ficheResolver) POI() *fichePOIResolver {
	if r.f.POI == nil {
		return nil
	}
	return &fichePOIResolver{p: *r.f.POI}
}

func (r *ficheResolver) Seo() *seoResolver { return newSeoResolver(r.f.Seo) }

// CategoryFilters prefers the criteria embedded in the fiche payload and
// falls back to the per-fiche criteria endpoint.
func (r *ficheResolver) CategoryFilters(ctx context.Context) (*[]*categoryFilterResolver, error) {
	criteria := r.f.Criteria
	if criteria == nil {
		var err error
		criteria, err = r.services.Chouquette.GetFiltersForFiche(ctx, r.f.ID)
		if err != nil {
			return nil, err
		}
	}
	return nullable(categoryFilterResolvers(criteria)), nil
}

// PostCards resolves the posts linked to this fiche. No links means null
// without an upstream call.
func (r *ficheResolver) PostCards(ctx context.Context) (*[]*postCardResolver, error) {
	if len(r.f.LinkedPostIDs) == 0 {
		return nil, nil
	}
	cards, err := r.services.Post.GetCardsByIDs(ctx, r.f.LinkedPostIDs)
	if err != nil {
		return nil, err
	}
	return nullable(postCardResolvers(cards)), nil
}

func (r *ficheResolver) SimilarFiches(ctx context.Context) (*[]*ficheCardResolver, error) {
	cards, err := r.services.Fiche.GetCardsByTagIDs(ctx, r.f.TagIDs, r.f.ID)
	if err != nil {
		return nil, err
	}
	return nullable(ficheCardResolvers(cards)), nil
}

type ficheCardResolver struct {
	c wordpress.FicheCard
}

func ficheCardResolvers(cards []wordpress.FicheCard) []*ficheCardResolver {
	if cards == nil {
		return nil
	}
	out := make([]*ficheCardResolver, len(cards))
	for i := range cards {
		out[i] = &ficheCardResolver{c: cards[i]}
	}
	return out
}

func (r *ficheCardResolver) ID() graphql.ID       { return intID(r.c.ID) }
func (r *ficheCardResolver) Slug() string         { return r.c.Slug }
func (r *ficheCardResolver) Title() *string       { return strptr(r.c.Title) }
func (r *ficheCardResolver) Content() *string     { return strptr(r.c.Content) }
func (r *ficheCardResolver) IsChouquettise() bool { return r.c.IsChouquettise }
func (r *ficheCardResolver) PrincipalCategoryID() *int32 {
	return int32ptr(r.c.PrincipalCategoryID)
}
func (r *ficheCardResolver) LocationID() *int32     { return int32ptr(r.c.LocationID) }
func (r *ficheCardResolver) ValueIDs() *[]int32     { return nullable(int32list(r.c.ValueIDs)) }
func (r *ficheCardResolver) Image() *mediaResolver  { return newMediaResolver(r.c.Image) }
func (r *ficheCardResolver) POI() *fichePOIResolver {
	if r.c.POI == nil {
		return nil
	}
	return &fichePOIResolver{p: *r.c.POI}
}

type fichesPageResolver struct {
	page *datasource.FichePage
}

func (r *fichesPageResolver) Fiches() *[]*ficheCardResolver {
	return nullable(ficheCardResolvers(r.page.Fiches))
}
func (r *fichesPageResolver) HasMore() bool     { return r.page.HasMore }
func (r *fichesPageResolver) Total() int32      { return int32(r.page.Total) }
func (r *fichesPageResolver) TotalPages() int32 { return int32(r.page.TotalPages) }

type ficheInfoResolver struct {
	i wordpress.FicheInfo
}

func (r *ficheInfoResolver) Mail() *string      { return strptr(r.i.Mail) }
func (r *ficheInfoResolver) Telephone() *string { return strptr(r.i.Telephone) }
func (r *ficheInfoResolver) Website() *string   { return strptr(r.i.Website) }
func (r *ficheInfoResolver) Facebook() *string  { return strptr(r.i.Facebook) }
func (r *ficheInfoResolver) Instagram() *string { return strptr(r.i.Instagram) }
func (r *ficheInfoResolver) Cost() *int32       { return int32ptr(r.i.Cost) }

func (r *ficheInfoResolver) Openings() *[]*string {
	if len(r.i.Openings) == 0 {
		return nil
	}
	out := make([]*string, len(r.i.Openings))
	for i := range r.i.Openings {
		out[i] = &r.i.Openings[i]
	}
	return nullable(out)
}

type ficheLogoResolver struct {
	l wordpress.FicheLogo
}

func (r *ficheLogoResolver) Slug() string { return r.l.Slug }
func (r *ficheLogoResolver) Name() string { return r.l.Name }
func (r *ficheLogoResolver) URL() *string { return strptr(r.l.URL) }

type fichePOIResolver struct {
	p wordpress.FichePOI
}

func (r *fichePOIResolver) Address() string   { return r.p.Address }
func (r *fichePOIResolver) Street() *string   { return strptr(r.p.Street) }
func (r *fichePOIResolver) Number() *int32    { return int32ptr(r.p.Number) }
func (r *fichePOIResolver) PostCode() *int32  { return int32ptr(r.p.PostCode) }
func (r *fichePOIResolver) State() *string    { return strptr(r.p.State) }
func (r *fichePOIResolver) City() *string     { return strptr(r.p.City) }
func (r *fichePOIResolver) Country() *string  { return strptr(r.p.Country) }
func (r *fichePOIResolver) Lat() float64      { return r.p.Lat }
func (r *fichePOIResolver) Lng() float64      { return r.p.Lng }
func (r *fichePOIResolver) Marker() string    { return r.p.Marker }

type categoryFilterResolver struct {
	c wordpress.Criteria
}

func categoryFilterResolvers(criteria []wordpress.Criteria) []*categoryFilterResolver {
	if criteria == nil {
		return nil
	}
	out := make([]*categoryFilterResolver, len(criteria))
	for i := range criteria {
		out[i] = &categoryFilterResolver{c: criteria[i]}
	}
	return out
}

func (r *categoryFilterResolver) ID() graphql.ID   { return intID(r.c.ID) }
func (r *categoryFilterResolver) Taxonomy() string { return r.c.Taxonomy }
func (r *categoryFilterResolver) Name() *string    { return strptr(r.c.Name) }

func (r *categoryFilterResolver) Values() *[]*filterTermResolver {
	if len(r.c.Terms) == 0 {
		return nil
	}
	out := make([]*filterTermResolver, len(r.c.Terms))
	for i := range r.c.Terms {
		out[i] = &filterTermResolver{t: r.c.Terms[i]}
	}
	return nullable(out)
}

type filterTermResolver struct {
	t wordpress.CriteriaTerm
}

func (r *filterTermResolver) ID() graphql.ID       { return intID(r.t.ID) }
func (r *filterTermResolver) Slug() string         { return r.t.Slug }
func (r *filterTermResolver) Name() *string        { return strptr(r.t.Name) }
func (r *filterTermResolver) Description() *string { return strptr(r.t.Description) }

package resolver

import (
	"context"
	"fmt"

	"chouquette-gateway/internal/datasource"
)

// nuxtServerInitResolver aggregates everything the site shell needs on
// first render. Each field resolves lazily so clients pay only for what
// they select.
type nuxtServerInitResolver struct {
	services *datasource.Services
}

func (r *nuxtServerInitResolver) Settings(ctx context.Context) (*settingsResolver, error) {
	settings, err := r.services.Base.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &settingsResolver{s: *settings}, nil
}

func (r *nuxtServerInitResolver) Theme(ctx context.Context) (*themeResolver, error) {
	theme, err := r.services.Chouquette.GetTheme(ctx)
	if err != nil {
		return nil, err
	}
	return &themeResolver{t: *theme}, nil
}

func (r *nuxtServerInitResolver) Redirects(ctx context.Context) (*[]*redirectResolver, error) {
	redirects, err := r.services.Yoast.GetRedirects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*redirectResolver, len(redirects))
	for i := range redirects {
		out[i] = &redirectResolver{r: redirects[i]}
	}
	return nullable(out), nil
}

func (r *nuxtServerInitResolver) Categories(ctx context.Context) (*[]*categoryResolver, error) {
	categories, err := r.services.Base.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*categoryResolver, len(categories))
	for i := range categories {
		out[i] = &categoryResolver{c: categories[i], base: r.services.Base}
	}
	return nullable(out), nil
}

func (r *nuxtServerInitResolver) Menus(ctx context.Context) (*[]*menuResolver, error) {
	menus, err := r.services.Menu.GetMenus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*menuResolver, len(menus))
	for i := range menus {
		out[i] = &menuResolver{m: menus[i]}
	}
	return nullable(out), nil
}

func (r *nuxtServerInitResolver) Locations(ctx context.Context) (*[]*locationResolver, error) {
	locations, err := r.services.Base.GetLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*locationResolver, len(locations))
	for i := range locations {
		out[i] = &locationResolver{l: locations[i]}
	}
	return nullable(out), nil
}

func (r *nuxtServerInitResolver) Values(ctx context.Context) (*[]*valueResolver, error) {
	values, err := r.services.Base.GetValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*valueResolver, len(values))
	for i := range values {
		out[i] = &valueResolver{v: values[i]}
	}
	return nullable(out), nil
}

// homeResolver feeds the landing page.
type homeResolver struct {
	services *datasource.Services
}

func (r *homeResolver) LatestPosts(ctx context.Context) (*[]*postCardResolver, error) {
	cards, err := r.services.Post.GetLatestPosts(ctx, 4)
	if err != nil {
		return nil, err
	}
	return nullable(postCardResolvers(cards)), nil
}

func (r *homeResolver) LatestChouquettises(ctx context.Context) (*[]*ficheResolver, error) {
	fiches, err := r.services.Fiche.GetLatestChouquettises(ctx, 6)
	if err != nil {
		return nil, err
	}
	out := make([]*ficheResolver, len(fiches))
	for i := range fiches {
		out[i] = &ficheResolver{f: &fiches[i], services: r.services}
	}
	return nullable(out), nil
}

func (r *homeResolver) TopPosts(ctx context.Context) (*[]*postCardResolver, error) {
	cards, err := r.services.Post.GetTopCards(ctx, 6, true)
	if err != nil {
		return nil, err
	}
	return nullable(postCardResolvers(cards)), nil
}

func (r *homeResolver) Seo(ctx context.Context) (*seoResolver, error) {
	seo, err := r.services.Yoast.GetHome(ctx)
	if err != nil {
		return nil, err
	}
	return newSeoResolver(seo), nil
}

// teamResolver feeds the team page.
type teamResolver struct {
	services *datasource.Services
}

func (r *teamResolver) Page(ctx context.Context) (*pageResolver, error) {
	page, err := r.services.Page.GetBySlug(ctx, "equipe")
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("team page not found")
	}
	return &pageResolver{p: page}, nil
}

func (r *teamResolver) Authors(ctx context.Context) (*[]*authorResolver, error) {
	authors, err := r.services.Base.GetTeam(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*authorResolver, len(authors))
	for i := range authors {
		out[i] = &authorResolver{a: authors[i]}
	}
	return nullable(out), nil
}

// Package resolver implements the GraphQL resolution graph over the
// datasource services. Fields resolve lazily; the engine runs sibling fields
// concurrently and the per-operation request cache deduplicates the
// resulting upstream fan-out.
package resolver

import (
	"context"

	"chouquette-gateway/internal/datasource"
)

// Resolver is the root query and mutation resolver.
type Resolver struct {
	services *datasource.Services
}

// New builds the root resolver over the given services.
func New(services *datasource.Services) *Resolver {
	return &Resolver{services: services}
}

func (r *Resolver) NuxtServerInit() *nuxtServerInitResolver {
	return &nuxtServerInitResolver{services: r.services}
}

func (r *Resolver) Settings(ctx context.Context) (*settingsResolver, error) {
	settings, err := r.services.Base.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &settingsResolver{s: *settings}, nil
}

func (r *Resolver) Home() *homeResolver {
	return &homeResolver{services: r.services}
}

func (r *Resolver) Team() *teamResolver {
	return &teamResolver{services: r.services}
}

func (r *Resolver) FicheBySlug(ctx context.Context, args struct{ Slug string }) (*ficheResolver, error) {
	fiche, err := r.services.Fiche.GetBySlug(ctx, args.Slug)
	if err != nil || fiche == nil {
		return nil, err
	}
	return &ficheResolver{f: fiche, services: r.services}, nil
}

type taxonomyFilterInput struct {
	Taxonomy string
	Values   []string
}

type fichesByFiltersArgs struct {
	Category         *string
	Location         *string
	Search           *string
	ChouquettiseOnly *bool
	CategoryFilters  *[]taxonomyFilterInput
	Page             *int32
	PageSize         *int32
}

func (r *Resolver) FichesByFilters(ctx context.Context, args fichesByFiltersArgs) (*fichesPageResolver, error) {
	query := datasource.FicheQuery{
		Category:         deref(args.Category),
		Location:         deref(args.Location),
		Search:           deref(args.Search),
		ChouquettiseOnly: derefBool(args.ChouquettiseOnly),
		Page:             derefInt(args.Page),
		PageSize:         derefInt(args.PageSize),
	}
	if args.CategoryFilters != nil {
		for _, filter := range *args.CategoryFilters {
			query.Filters = append(query.Filters, datasource.TaxonomyFilter{
				Taxonomy: filter.Taxonomy,
				Values:   filter.Values,
			})
		}
	}
	page, err := r.services.Fiche.GetCardsByFilters(ctx, query)
	if err != nil {
		return nil, err
	}
	return &fichesPageResolver{page: page}, nil
}

func (r *Resolver) FichesByText(ctx context.Context, args struct {
	Text string
	Page *int32
}) (*fichesPageResolver, error) {
	page, err := r.services.Fiche.GetCardsBySearchText(ctx, args.Text, derefInt(args.Page), 0)
	if err != nil {
		return nil, err
	}
	return &fichesPageResolver{page: page}, nil
}

func (r *Resolver) PageBySlug(ctx context.Context, args struct{ Slug string }) (*pageResolver, error) {
	page, err := r.services.Page.GetBySlug(ctx, args.Slug)
	if err != nil || page == nil {
		return nil, err
	}
	return &pageResolver{p: page}, nil
}

func (r *Resolver) PostBySlug(ctx context.Context, args struct{ Slug string }) (*postResolver, error) {
	post, err := r.services.Post.GetBySlug(ctx, args.Slug)
	if err != nil || post == nil {
		return nil, err
	}
	return &postResolver{p: post, services: r.services}, nil
}

func (r *Resolver) LatestPostsWithSticky(ctx context.Context, args struct{ Number *int32 }) ([]*postCardResolver, error) {
	n := derefInt(args.Number)
	if n <= 0 {
		n = 10
	}
	cards, err := r.services.Post.GetLatestWithSticky(ctx, n)
	if err != nil {
		return nil, err
	}
	return postCardResolvers(cards), nil
}

type postsByFiltersArgs struct {
	Category *string
	Search   *string
	Asc      *bool
	TopOnly  *bool
	Page     *int32
	PageSize *int32
}

func (r *Resolver) PostsByFilters(ctx context.Context, args postsByFiltersArgs) (*postsPageResolver, error) {
	page, err := r.services.Post.FindCards(ctx, datasource.PostQuery{
		Category: deref(args.Category),
		Search:   deref(args.Search),
		Asc:      derefBool(args.Asc),
		TopOnly:  derefBool(args.TopOnly),
		Page:     derefInt(args.Page),
		PageSize: derefInt(args.PageSize),
	})
	if err != nil {
		return nil, err
	}
	return &postsPageResolver{page: page}, nil
}

func (r *Resolver) PostsByText(ctx context.Context, args struct {
	Text string
	Page *int32
}) (*postsPageResolver, error) {
	page, err := r.services.Post.FindCards(ctx, datasource.PostQuery{
		Search: args.Text,
		Page:   derefInt(args.Page),
	})
	if err != nil {
		return nil, err
	}
	return &postsPageResolver{page: page}, nil
}

func (r *Resolver) FiltersByCategory(ctx context.Context, args struct{ CategoryID int32 }) ([]*categoryFilterResolver, error) {
	criteria, err := r.services.Chouquette.GetFiltersForCategory(ctx, int(args.CategoryID))
	if err != nil {
		return nil, err
	}
	return categoryFilterResolvers(criteria), nil
}

func (r *Resolver) GetMenus(ctx context.Context) ([]*menuResolver, error) {
	menus, err := r.services.Menu.GetMenus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*menuResolver, len(menus))
	for i := range menus {
		out[i] = &menuResolver{m: menus[i]}
	}
	return out, nil
}

func (r *Resolver) GetRedirects(ctx context.Context) ([]*redirectResolver, error) {
	redirects, err := r.services.Yoast.GetRedirects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*redirectResolver, len(redirects))
	for i := range redirects {
		out[i] = &redirectResolver{r: redirects[i]}
	}
	return out, nil
}

type ficheContactArgs struct {
	FicheID   int32
	Name      string
	Email     string
	Message   string
	Recaptcha string
}

func (r *Resolver) ReportFicheInfo(ctx context.Context, args ficheContactArgs) (*string, error) {
	return nil, r.services.Fiche.PostReport(ctx, int(args.FicheID), datasource.FicheContactInput{
		Name:      args.Name,
		Email:     args.Email,
		Message:   args.Message,
		Recaptcha: args.Recaptcha,
	})
}

func (r *Resolver) ContactFicheOwner(ctx context.Context, args ficheContactArgs) (*string, error) {
	return nil, r.services.Fiche.PostContact(ctx, int(args.FicheID), datasource.FicheContactInput{
		Name:      args.Name,
		Email:     args.Email,
		Message:   args.Message,
		Recaptcha: args.Recaptcha,
	})
}

func (r *Resolver) ContactStaff(ctx context.Context, args struct {
	Name      string
	Email     string
	Subject   string
	To        string
	Message   string
	Recaptcha string
}) (*string, error) {
	return nil, r.services.Chouquette.PostContact(ctx, datasource.StaffContactInput{
		Name:      args.Name,
		Email:     args.Email,
		Subject:   args.Subject,
		To:        args.To,
		Message:   args.Message,
		Recaptcha: args.Recaptcha,
	})
}

func (r *Resolver) CommentPost(ctx context.Context, args struct {
	PostID      int32
	ParentID    *int32
	AuthorName  string
	AuthorEmail string
	Content     string
	Recaptcha   string
}) (*string, error) {
	return nil, r.services.Base.PostComment(ctx, datasource.CommentInput{
		PostID:      int(args.PostID),
		ParentID:    derefInt(args.ParentID),
		AuthorName:  args.AuthorName,
		AuthorEmail: args.AuthorEmail,
		Content:     args.Content,
		Recaptcha:   args.Recaptcha,
	})
}

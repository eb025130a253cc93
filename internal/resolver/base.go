package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/datasource"
	"chouquette-gateway/internal/wordpress"
)

type settingsResolver struct {
	s wordpress.Settings
}

func (r *settingsResolver) Name() *string        { return strptr(r.s.Name) }
func (r *settingsResolver) Description() *string { return strptr(r.s.Description) }
func (r *settingsResolver) URL() *string         { return strptr(r.s.URL) }

type themeResolver struct {
	t wordpress.Theme
}

func (r *themeResolver) SystemText() *string { return strptr(r.t.SystemText) }

type locationResolver struct {
	l wordpress.Location
}

func (r *locationResolver) ID() graphql.ID       { return intID(r.l.ID) }
func (r *locationResolver) ParentID() *int32     { return int32ptr(r.l.ParentID) }
func (r *locationResolver) Name() *string        { return strptr(r.l.Name) }
func (r *locationResolver) Slug() *string        { return strptr(r.l.Slug) }
func (r *locationResolver) Description() *string { return strptr(r.l.Description) }

type valueResolver struct {
	v wordpress.Value
}

func (r *valueResolver) ID() graphql.ID        { return intID(r.v.ID) }
func (r *valueResolver) Name() *string         { return strptr(r.v.Name) }
func (r *valueResolver) Slug() *string         { return strptr(r.v.Slug) }
func (r *valueResolver) Description() *string  { return strptr(r.v.Description) }
func (r *valueResolver) Image() *mediaResolver { return newMediaResolver(r.v.Image) }

// categoryResolver resolves logos lazily through the media endpoint; the
// request cache keeps repeated logo fetches to one upstream call per id.
type categoryResolver struct {
	c    wordpress.Category
	base *datasource.BaseService
}

func (r *categoryResolver) ID() graphql.ID       { return intID(r.c.ID) }
func (r *categoryResolver) Slug() string         { return r.c.Slug }
func (r *categoryResolver) Name() *string        { return strptr(r.c.Name) }
func (r *categoryResolver) Description() *string { return strptr(r.c.Description) }
func (r *categoryResolver) ParentID() *int32     { return int32ptr(r.c.ParentID) }

func (r *categoryResolver) LogoYellow(ctx context.Context) (*mediaResolver, error) {
	return r.logo(ctx, r.c.LogoYellowID)
}

func (r *categoryResolver) LogoWhite(ctx context.Context) (*mediaResolver, error) {
	return r.logo(ctx, r.c.LogoWhiteID)
}

func (r *categoryResolver) LogoBlack(ctx context.Context) (*mediaResolver, error) {
	return r.logo(ctx, r.c.LogoBlackID)
}

func (r *categoryResolver) logo(ctx context.Context, id int) (*mediaResolver, error) {
	media, err := r.base.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newMediaResolver(media), nil
}

type authorResolver struct {
	a wordpress.Author
}

func (r *authorResolver) ID() graphql.ID       { return intID(r.a.ID) }
func (r *authorResolver) Slug() string         { return r.a.Slug }
func (r *authorResolver) Name() *string        { return strptr(r.a.Name) }
func (r *authorResolver) Description() *string { return strptr(r.a.Description) }
func (r *authorResolver) Avatar() *string      { return strptr(r.a.Avatar) }
func (r *authorResolver) Title() *string       { return strptr(r.a.Title) }

type tagResolver struct {
	t wordpress.Tag
}

func (r *tagResolver) ID() graphql.ID { return intID(r.t.ID) }
func (r *tagResolver) Slug() string   { return r.t.Slug }
func (r *tagResolver) Name() *string  { return strptr(r.t.Name) }

type commentResolver struct {
	c wordpress.Comment
}

func (r *commentResolver) ID() graphql.ID        { return intID(r.c.ID) }
func (r *commentResolver) ParentID() int32       { return int32(r.c.ParentID) }
func (r *commentResolver) AuthorID() *int32      { return int32ptr(r.c.AuthorID) }
func (r *commentResolver) AuthorName() *string   { return strptr(r.c.AuthorName) }
func (r *commentResolver) AuthorAvatar() *string { return strptr(r.c.AuthorAvatar) }
func (r *commentResolver) Date() *string         { return strptr(r.c.Date) }
func (r *commentResolver) Content() *string      { return strptr(r.c.Content) }

type seoResolver struct {
	s wordpress.Seo
}

// newSeoResolver maps absent SEO metadata to null.
func newSeoResolver(s *wordpress.Seo) *seoResolver {
	if s == nil {
		return nil
	}
	return &seoResolver{s: *s}
}

func (r *seoResolver) Title() *string    { return strptr(r.s.Title) }
func (r *seoResolver) Metadata() *string { return strptr(r.s.Metadata) }
func (r *seoResolver) JSONLD() *string   { return strptr(r.s.JSONLD) }

type redirectResolver struct {
	r wordpress.Redirect
}

func (r *redirectResolver) From() string  { return r.r.From }
func (r *redirectResolver) To() string    { return r.r.To }
func (r *redirectResolver) Status() int32 { return int32(r.r.Status) }

type menuResolver struct {
	m wordpress.Menu
}

func (r *menuResolver) ID() graphql.ID { return intID(r.m.ID) }
func (r *menuResolver) Name() string   { return r.m.Name }
func (r *menuResolver) Slug() string   { return r.m.Slug }

func (r *menuResolver) Items() *[]*menuItemResolver {
	if len(r.m.Items) == 0 {
		return nil
	}
	out := make([]*menuItemResolver, len(r.m.Items))
	for i := range r.m.Items {
		out[i] = &menuItemResolver{i: r.m.Items[i]}
	}
	return nullable(out)
}

type menuItemResolver struct {
	i wordpress.MenuItem
}

func (r *menuItemResolver) ID() graphql.ID { return intID(r.i.ID) }
func (r *menuItemResolver) Type() string   { return r.i.Type }
func (r *menuItemResolver) Slug() string   { return r.i.Slug }
func (r *menuItemResolver) Title() *string { return strptr(r.i.Title) }
func (r *menuItemResolver) URL() *string   { return strptr(r.i.URL) }

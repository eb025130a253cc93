package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/datasource"
	"chouquette-gateway/internal/wordpress"
)

type postResolver struct {
	p        *wordpress.Post
	services *datasource.Services
}

func (r *postResolver) ID() graphql.ID     { return intID(r.p.ID) }
func (r *postResolver) Slug() string       { return r.p.Slug }
func (r *postResolver) Title() *string     { return strptr(r.p.Title) }
func (r *postResolver) Date() string       { return r.p.Date }
func (r *postResolver) Modified() string   { return r.p.Modified }
func (r *postResolver) Content() *string   { return strptr(r.p.Content) }
func (r *postResolver) IsTop() bool        { return r.p.IsTop }
func (r *postResolver) CategoryID() *int32 { return int32ptr(r.p.CategoryID) }
func (r *postResolver) FicheIDs() *[]int32 { return nullable(int32list(r.p.FicheIDs)) }

func (r *postResolver) Image() *mediaResolver { return newMediaResolver(r.p.Image) }

func (r *postResolver) Tags() *[]*tagResolver {
	if len(r.p.Tags) == 0 {
		return nil
	}
	out := make([]*tagResolver, len(r.p.Tags))
	for i := range r.p.Tags {
		out[i] = &tagResolver{t: r.p.Tags[i]}
	}
	return nullable(out)
}

func (r *postResolver) Seo() *seoResolver { return newSeoResolver(r.p.Seo) }

func (r *postResolver) Authors() *[]*authorResolver {
	if len(r.p.Authors) == 0 {
		return nil
	}
	out := make([]*authorResolver, len(r.p.Authors))
	for i := range r.p.Authors {
		out[i] = &authorResolver{a: r.p.Authors[i]}
	}
	return nullable(out)
}

// FicheCards resolves the fiches linked to this post. No links means null
// without an upstream call.
func (r *postResolver) FicheCards(ctx context.Context) (*[]*ficheCardResolver, error) {
	if len(r.p.FicheIDs) == 0 {
		return nil, nil
	}
	cards, err := r.services.Fiche.GetCardsByIDs(ctx, r.p.FicheIDs)
	if err != nil {
		return nil, err
	}
	return nullable(ficheCardResolvers(cards)), nil
}

func (r *postResolver) Comments(ctx context.Context) (*[]*commentResolver, error) {
	comments, err := r.services.Base.GetCommentsByPost(ctx, r.p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*commentResolver, len(comments))
	for i := range comments {
		out[i] = &commentResolver{c: comments[i]}
	}
	return nullable(out), nil
}

func (r *postResolver) SimilarPosts(ctx context.Context) (*[]*postCardResolver, error) {
	cards, err := r.services.Post.GetCardsByTagIDs(ctx, r.p.TagIDs(), r.p.ID)
	if err != nil {
		return nil, err
	}
	return nullable(postCardResolvers(cards)), nil
}

type postCardResolver struct {
	c wordpress.PostCard
}

func postCardResolvers(cards []wordpress.PostCard) []*postCardResolver {
	out := make([]*postCardResolver, len(cards))
	for i := range cards {
		out[i] = &postCardResolver{c: cards[i]}
	}
	return out
}

func (r *postCardResolver) ID() graphql.ID        { return intID(r.c.ID) }
func (r *postCardResolver) Slug() string          { return r.c.Slug }
func (r *postCardResolver) Title() *string        { return strptr(r.c.Title) }
func (r *postCardResolver) Date() *string         { return strptr(r.c.Date) }
func (r *postCardResolver) Modified() *string     { return strptr(r.c.Modified) }
func (r *postCardResolver) AuthorName() *string   { return strptr(r.c.AuthorName) }
func (r *postCardResolver) IsTop() bool           { return r.c.IsTop }
func (r *postCardResolver) CategoryID() *int32    { return int32ptr(r.c.CategoryID) }
func (r *postCardResolver) Image() *mediaResolver { return newMediaResolver(r.c.Image) }

type postsPageResolver struct {
	page *datasource.PostPage
}

func (r *postsPageResolver) PostCards() *[]*postCardResolver {
	if r.page.PostCards == nil {
		return nil
	}
	return nullable(postCardResolvers(r.page.PostCards))
}
func (r *postsPageResolver) HasMore() bool     { return r.page.HasMore }
func (r *postsPageResolver) Total() int32      { return int32(r.page.Total) }
func (r *postsPageResolver) TotalPages() int32 { return int32(r.page.TotalPages) }

type pageResolver struct {
	p *wordpress.Page
}

func (r *pageResolver) ID() graphql.ID    { return intID(r.p.ID) }
func (r *pageResolver) Slug() string      { return r.p.Slug }
func (r *pageResolver) Title() *string    { return strptr(r.p.Title) }
func (r *pageResolver) Date() *string     { return strptr(r.p.Date) }
func (r *pageResolver) Modified() *string { return strptr(r.p.Modified) }
func (r *pageResolver) Content() *string  { return strptr(r.p.Content) }
func (r *pageResolver) Seo() *seoResolver { return newSeoResolver(r.p.Seo) }

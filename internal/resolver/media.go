package resolver

import (
	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/wordpress"
)

type mediaResolver struct {
	m wordpress.Media
}

// newMediaResolver maps a missing media entity to null.
func newMediaResolver(m *wordpress.Media) *mediaResolver {
	if m == nil {
		return nil
	}
	return &mediaResolver{m: *m}
}

func (r *mediaResolver) ID() graphql.ID  { return intID(r.m.ID) }
func (r *mediaResolver) Alt() *string    { return strptr(r.m.Alt) }
func (r *mediaResolver) Source() *string { return strptr(r.m.Source) }

func (r *mediaResolver) Sizes() *[]*mediaDetailResolver {
	if len(r.m.Sizes) == 0 {
		return nil
	}
	out := make([]*mediaDetailResolver, len(r.m.Sizes))
	for i := range r.m.Sizes {
		out[i] = &mediaDetailResolver{s: r.m.Sizes[i]}
	}
	return nullable(out)
}

type mediaDetailResolver struct {
	s wordpress.MediaSize
}

func (r *mediaDetailResolver) Name() string { return r.s.Name }
func (r *mediaDetailResolver) Image() *mediaSizeResolver {
	return &mediaSizeResolver{s: r.s}
}

type mediaSizeResolver struct {
	s wordpress.MediaSize
}

func (r *mediaSizeResolver) Width() int32  { return int32(r.s.Width) }
func (r *mediaSizeResolver) Height() int32 { return int32(r.s.Height) }
func (r *mediaSizeResolver) URL() string   { return r.s.URL }

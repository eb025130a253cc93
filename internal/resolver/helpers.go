package resolver

import (
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"
)

func intID(n int) graphql.ID {
	return graphql.ID(strconv.Itoa(n))
}

// strptr maps empty strings to null.
func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// int32ptr maps the zero id to null.
func int32ptr(n int) *int32 {
	if n == 0 {
		return nil
	}
	v := int32(n)
	return &v
}

func int32list(ids []int) []int32 {
	if ids == nil {
		return nil
	}
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}

// nullable adapts a slice to the pointer-to-slice shape graphql-go
// requires for nullable list fields; nil maps to null.
func nullable[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int32) int {
	if n == nil {
		return 0
	}
	return int(*n)
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

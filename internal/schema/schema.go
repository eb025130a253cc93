// Package schema composes the GraphQL SDL from per-resource fragments and
// validates the merged result before the engine sees it.
package schema

import (
	"embed"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

//go:embed *.graphql
var fragments embed.FS

// fragment order is fixed so positions in validation errors are stable.
var fragmentFiles = []string{
	"common.graphql",
	"base.graphql",
	"fiche.graphql",
	"post.graphql",
	"page.graphql",
	"menu.graphql",
}

// Merge concatenates the SDL fragments and validates the result. The
// returned string is the full schema document.
func Merge() (string, error) {
	sources := make([]*ast.Source, 0, len(fragmentFiles))
	var merged strings.Builder
	for _, name := range fragmentFiles {
		data, err := fragments.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read schema fragment %s: %w", name, err)
		}
		sources = append(sources, &ast.Source{Name: name, Input: string(data)})
		merged.Write(data)
		merged.WriteByte('\n')
	}

	if _, err := gqlparser.LoadSchema(sources...); err != nil {
		return "", fmt.Errorf("invalid schema: %w", err)
	}
	return merged.String(), nil
}

// IsMutation reports whether the operation a request would execute is a
// mutation. Unparseable documents count as mutations so they are never
// served from a response cache.
func IsMutation(query, operationName string) bool {
	doc, err := parser.ParseQuery(&ast.Source{Name: "operation", Input: query})
	if err != nil {
		return true
	}
	op := doc.Operations.ForName(operationName)
	if op == nil {
		return true
	}
	return op.Operation == ast.Mutation
}

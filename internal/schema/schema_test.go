package schema

import (
	"strings"
	"testing"
)

func TestMergeValidates(t *testing.T) {
	sdl, err := Merge()
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	for _, typeName := range []string{"type Query", "type Mutation", "type Fiche", "type PostCard", "type Menu"} {
		if !strings.Contains(sdl, typeName) {
			t.Fatalf("merged schema is missing %q", typeName)
		}
	}
}

func TestIsMutation(t *testing.T) {
	cases := []struct {
		name  string
		query string
		op    string
		want  bool
	}{
		{"anonymous query", `{ settings { name } }`, "", false},
		{"named query", `query Init { settings { name } }`, "Init", false},
		{"mutation", `mutation Send($id: Int!) { reportFicheInfo(ficheId: $id, name: "n", email: "e", message: "m", recaptcha: "r") }`, "Send", true},
		{"unknown operation name", `query Init { settings { name } }`, "Other", true},
		{"unparseable", `{ settings {`, "", true},
		{"mixed document picks by name", `query Q { settings { name } } mutation M { contactStaff(name: "n", email: "e", subject: "s", to: "t", message: "m", recaptcha: "r") }`, "M", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsMutation(tc.query, tc.op); got != tc.want {
				t.Fatalf("IsMutation(%q, %q) = %v, want %v", tc.query, tc.op, got, tc.want)
			}
		})
	}
}

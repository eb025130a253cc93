package wordpress

import "fmt"

// MalformedDataError reports an upstream object missing a field a reducer
// cannot do without. It identifies the source object so operators can find
// the broken content in the CMS.
type MalformedDataError struct {
	Resource string
	ID       int
	Slug     string
	Field    string
}

func (e *MalformedDataError) Error() string {
	ref := e.Slug
	if ref == "" {
		ref = "?"
	}
	return fmt.Sprintf("malformed %s %q (id=%d): missing required field %q", e.Resource, ref, e.ID, e.Field)
}

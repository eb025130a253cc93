// Package wordpress normalizes raw WordPress REST payloads into the
// gateway's internal entities. Reducers are pure: no I/O, no shared state,
// HTML entities decoded exactly once at this boundary.
package wordpress

// Settings is the site-wide metadata from the REST root.
type Settings struct {
	Name        string
	Description string
	URL         string
}

// Location is a geographic taxonomy term. ParentID 0 means root.
type Location struct {
	ID          int
	ParentID    int
	Name        string
	Slug        string
	Description string
}

// Value is an editorial "value" taxonomy term with an embedded icon.
type Value struct {
	ID          int
	Name        string
	Slug        string
	Description string
	Image       *Media
}

// Category is a content category. Logo ids reference media entities which
// are resolved lazily; only top-level categories carry logos.
type Category struct {
	ID           int
	Slug         string
	Name         string
	Description  string
	ParentID     int
	LogoYellowID int
	LogoWhiteID  int
	LogoBlackID  int
}

// LogoIDs returns the category's non-zero logo media ids.
func (c Category) LogoIDs() []int {
	var ids []int
	for _, id := range []int{c.LogoYellowID, c.LogoWhiteID, c.LogoBlackID} {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// MediaSize is one rendition of a media entity.
type MediaSize struct {
	Name   string
	Width  int
	Height int
	URL    string
}

// Media is an image with its known renditions.
type Media struct {
	ID     int
	Alt    string
	Source string
	Sizes  []MediaSize
}

// Author is a site author. Two upstream shapes exist: team members carry an
// avatar_urls map keyed by size, co-authors a plain avatar URL.
type Author struct {
	ID          int
	Slug        string
	Name        string
	Title       string
	Description string
	Avatar      string
}

// Comment is a post comment. ParentID forms the reply tree; AuthorID 0
// means the comment was left anonymously.
type Comment struct {
	ID           int
	ParentID     int
	AuthorID     int
	AuthorName   string
	AuthorAvatar string
	Date         string
	Content      string
}

// MenuItem types, matching the upstream menu object kinds the gateway serves.
const (
	MenuItemTypePage     = "page"
	MenuItemTypeCategory = "category"
)

// Menu is a navigation menu with its ordered items.
type Menu struct {
	ID    int
	Name  string
	Slug  string
	Items []MenuItem
}

// MenuItem is one navigation entry.
type MenuItem struct {
	ID    int
	Type  string
	Slug  string
	Title string
	URL   string
}

// Redirect is one parsed redirect rule.
type Redirect struct {
	From   string
	To     string
	Status int
}

// Seo carries SEO metadata as opaque serialized strings.
type Seo struct {
	Title    string
	Metadata string
	JSONLD   string
}

// Theme is site-wide theme data from the chouquette plugin.
type Theme struct {
	SystemText string
}

// Page is a static CMS page.
type Page struct {
	ID       int
	Slug     string
	Title    string
	Date     string
	Modified string
	Content  string
	Seo      *Seo
}

// Tag is a post tag.
type Tag struct {
	ID   int
	Slug string
	Name string
}

// Post is a full blog post.
type Post struct {
	ID         int
	Slug       string
	Title      string
	Date       string
	Modified   string
	Content    string
	IsTop      bool
	CategoryID int
	FicheIDs   []int
	Tags       []Tag
	Image      *Media
	Authors    []Author
	Seo        *Seo
}

// TagIDs returns the ids of the post's tags, for similar-post lookups.
func (p Post) TagIDs() []int {
	ids := make([]int, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// PostCard is the list-view subset of a post.
type PostCard struct {
	ID         int
	Slug       string
	Title      string
	Date       string
	Modified   string
	AuthorName string
	IsTop      bool
	CategoryID int
	Image      *Media
}

// FicheInfo is the business contact block of a fiche.
type FicheInfo struct {
	Mail      string
	Telephone string
	Website   string
	Facebook  string
	Instagram string
	Cost      int
	Openings  []string
}

// FichePOI is the geolocation block of a fiche. It exists only when the
// upstream location info exists; callers never see a half-filled POI.
type FichePOI struct {
	Address  string
	Street   string
	Number   int
	PostCode int
	State    string
	City     string
	Country  string
	Lat      float64
	Lng      float64
	Marker   string
}

// FicheLogo is the principal category's marker logo.
type FicheLogo struct {
	Slug string
	Name string
	URL  string
}

// CriteriaTerm is one selectable term of a criteria taxonomy.
type CriteriaTerm struct {
	ID          int
	Slug        string
	Name        string
	Description string
}

// Criteria is a named taxonomy of filter terms.
type Criteria struct {
	ID       int
	Taxonomy string
	Name     string
	Terms    []CriteriaTerm
}

// Fiche is a business/venue listing, the site's primary content type.
type Fiche struct {
	ID                  int
	Slug                string
	Title               string
	Date                string
	Content             string
	IsChouquettise      bool
	Address             string
	PrincipalCategoryID int
	CategoryIDs         []int
	LocationID          int
	ValueIDs            []int
	TagIDs              []int
	LinkedPostIDs       []int
	Info                *FicheInfo
	Logo                *FicheLogo
	Image               *Media
	POI                 *FichePOI
	Criteria            []Criteria
	Seo                 *Seo
}

// FicheCard is the list-view subset of a fiche.
type FicheCard struct {
	ID                  int
	Slug                string
	Title               string
	Content             string
	IsChouquettise      bool
	PrincipalCategoryID int
	LocationID          int
	ValueIDs            []int
	Image               *Media
	POI                 *FichePOI
}

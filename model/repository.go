package model

// RepositoryListing is one repository as returned by the GitHub listing endpoint
// optional upstream fields are kept as pointers so "absent" and "empty" stay distinguishable
type RepositoryListing struct {
	ID          int64
	Name        string
	Description *string
	Language    *string
	Homepage    *string
	HTMLURL     string
	Fork        bool
	Topics      []string
}

// DisplayProject is the shape rendered in the Projects section
// feed-derived projects carry the owning listing ID, the featured project has none
type DisplayProject struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title"`
	Category    string       `json:"category,omitempty"`
	Status      string       `json:"status"`
	Techs       []string     `json:"techs"`
	Description string       `json:"description"`
	Links       ProjectLinks `json:"links"`
}

// ProjectLinks are omitted when empty so the view never renders a dead link
type ProjectLinks struct {
	Demo       string `json:"demo,omitempty"`
	Repository string `json:"repo,omitempty"`
}

// Package web renders the portfolio page from the static content and the feed state.
package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/fabricio-odn/portfolio/model"
)

const PageTemplate = "index.html"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

// PageData is everything the page depends on
// when Feed is still loading the page fetches FeedEndpoint itself
type PageData struct {
	Site         model.SiteContent
	Feed         model.FeedState
	FeedEndpoint string
	Year         int
}

func NewPageData(site model.SiteContent, feed model.FeedState, feedEndpoint string) PageData {
	return PageData{
		Site:         site,
		Feed:         feed,
		FeedEndpoint: feedEndpoint,
		Year:         time.Now().Year(),
	}
}

// Templates returns the parsed page templates, shared with the gin engine
func Templates() *template.Template {
	return templates
}

func Render(w io.Writer, data PageData) error {
	return templates.ExecuteTemplate(w, PageTemplate, data)
}

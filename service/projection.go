package service

import (
	"net/url"
	"strings"

	"github.com/fabricio-odn/portfolio/model"
)

const (
	// FeedStatusLabel tells feed projects apart from the hand-authored featured one
	FeedStatusLabel = "GitHub"

	FallbackTech        = "Code"
	FallbackDescription = "Projeto desenvolvido com foco em qualidade de código e performance."

	maxTechs = 3
)

// ProjectFeed filters, truncates and projects the upstream listings, keeping upstream order
func ProjectFeed(listings []model.RepositoryListing, maxItems int) []model.DisplayProject {
	retained := FilterListings(listings, maxItems)

	projects := make([]model.DisplayProject, 0, len(retained))
	for _, l := range retained {
		projects = append(projects, ProjectListing(l))
	}

	return projects
}

// FilterListings keeps non-fork listings with a description, up to maxItems
func FilterListings(listings []model.RepositoryListing, maxItems int) []model.RepositoryListing {
	if maxItems <= 0 {
		return []model.RepositoryListing{}
	}

	retained := make([]model.RepositoryListing, 0, maxItems)

	for _, l := range listings {
		if len(retained) >= maxItems {
			break
		}

		if l.Fork || l.Description == nil || *l.Description == "" {
			continue
		}

		retained = append(retained, l)
	}

	return retained
}

// ProjectListing turns one listing into its display shape
func ProjectListing(l model.RepositoryListing) model.DisplayProject {
	project := model.DisplayProject{
		ID:          l.ID,
		Title:       FormatTitle(l.Name),
		Status:      FeedStatusLabel,
		Techs:       TechTags(l),
		Description: FallbackDescription,
		Links: model.ProjectLinks{
			Repository: l.HTMLURL,
		},
	}

	if l.Description != nil && *l.Description != "" {
		project.Description = *l.Description
	}

	// a blank or non-web homepage would render as a dead or unsafe "demo" button
	if l.Homepage != nil && isWebURL(*l.Homepage) {
		project.Links.Demo = *l.Homepage
	}

	return project
}

// FormatTitle replaces every hyphen with a space, nothing else
func FormatTitle(name string) string {
	return strings.ReplaceAll(name, "-", " ")
}

// TechTags returns the first topics, else the language, else FallbackTech
func TechTags(l model.RepositoryListing) []string {
	if len(l.Topics) > 0 {
		n := min(len(l.Topics), maxTechs)

		techs := make([]string, n)
		copy(techs, l.Topics[:n])

		return techs
	}

	if l.Language != nil && *l.Language != "" {
		return []string{*l.Language}
	}

	return []string{FallbackTech}
}

func isWebURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

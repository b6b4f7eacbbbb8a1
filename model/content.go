package model

// SiteContent holds every hand-authored record rendered on the page
type SiteContent struct {
	Brand       string         `json:"brand"`
	Navigation  []NavLink      `json:"navigation"`
	ContactLink string         `json:"contactLink"`
	Hero        Hero           `json:"hero"`
	Stack       []SkillGroup   `json:"stack"`
	Services    []Service      `json:"services"`
	Featured    DisplayProject `json:"featured"`
	Social      []SocialLink   `json:"social"`
	Owner       string         `json:"owner"`
}

type NavLink struct {
	Anchor string `json:"anchor"`
	Label  string `json:"label"`
}

type Hero struct {
	Badge      string   `json:"badge"`
	TitleLines []string `json:"titleLines"`
	Subtitle   string   `json:"subtitle"`
	Company    string   `json:"company"`
	PrimaryCTA string   `json:"primaryCta"`
	ProfileURL string   `json:"profileUrl"`
	ProfileCTA string   `json:"profileCta"`
}

type SkillGroup struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Tags        []string `json:"tags"`
}

type Service struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SocialLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

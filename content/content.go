// Package content holds the hand-authored records of the page.
// Every accessor builds a fresh value so callers never share slices.
package content

import (
	"github.com/fabricio-odn/portfolio/model"
)

const (
	owner        = "Oliveira Solutions"
	whatsappLink = "https://wa.me/5511958980732"
)

// FeaturedProject is always rendered first, independently of the feed
func FeaturedProject() model.DisplayProject {
	return model.DisplayProject{
		Title:       "Oliveira Solutions Portal",
		Category:    "Institucional & Infra",
		Status:      "Online",
		Techs:       []string{"React", "Tailwind", "Vercel", "SEO"},
		Description: "Plataforma SPA de alta performance. Desenvolvida com arquitetura de componentes React e Tailwind CSS mobile-first. Inclui otimização de SEO técnico e automação de deploy.",
		Links: model.ProjectLinks{
			Demo: "https://oliveirasolutions.com.br",
		},
	}
}

// ProfileURL is the public GitHub profile of the account
func ProfileURL(account string) string {
	return "https://github.com/" + account
}

// Site returns the whole static content for the given GitHub account
func Site(account string) model.SiteContent {
	return model.SiteContent{
		Brand: "F.Oliveira",
		Navigation: []model.NavLink{
			{Anchor: "stack", Label: "Stack"},
			{Anchor: "servicos", Label: "Soluções"},
			{Anchor: "projetos", Label: "Projetos"},
		},
		ContactLink: whatsappLink,
		Hero: model.Hero{
			Badge:      "Disponível para Projetos & Consultoria",
			TitleLines: []string{"Engenharia de Software", "& Inteligência em TI"},
			Subtitle:   "Eu construo a ponte entre infraestrutura robusta e desenvolvimento moderno. Fundador da",
			Company:    owner,
			PrimaryCTA: "Ver Portfólio",
			ProfileURL: ProfileURL(account),
			ProfileCTA: "GitHub",
		},
		Stack: []model.SkillGroup{
			{
				Key:         "development",
				Title:       "Desenvolvimento Fullstack",
				Description: "Foco em performance e interfaces modernas.",
				Color:       "blue",
				Tags:        []string{"React", "Vite", "Tailwind", "Node.js", "TypeScript", "Chakra UI", "Git"},
			},
			{
				Key:         "infrastructure",
				Title:       "Infra & OS",
				Description: "Ambientes Linux e Cloud Microsoft.",
				Color:       "green",
				Tags:        []string{"Fedora", "Linux", "ZSH", "Office 365", "Azure", "AWS"},
			},
		},
		Services: []model.Service{
			{
				Icon:        "globe",
				Title:       "Migração Cloud",
				Description: "Especialista em Microsoft 365 e Google Workspace. Leve sua empresa para a nuvem.",
			},
			{
				Icon:        "shield",
				Title:       "Segurança de Redes",
				Description: "Proteção de dados, configuração de Firewalls e VPNs para acesso remoto seguro.",
			},
			{
				Icon:        "zap",
				Title:       "Automação Web",
				Description: "Landing pages de alta conversão e sistemas web personalizados para o seu negócio.",
			},
		},
		Featured: FeaturedProject(),
		Social: []model.SocialLink{
			{Name: "LinkedIn", Href: "https://linkedin.com/in/seu-perfil"},
			{Name: "GitHub", Href: ProfileURL(account)},
			{Name: "E-mail", Href: "mailto:contato@email.com"},
		},
		Owner: owner,
	}
}

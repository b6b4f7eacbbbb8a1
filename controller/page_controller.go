package controller

import (
	"net/http"

	"github.com/fabricio-odn/portfolio/config"
	"github.com/fabricio-odn/portfolio/content"
	"github.com/fabricio-odn/portfolio/model"
	"github.com/fabricio-odn/portfolio/web"
	"github.com/gin-gonic/gin"
)

const ProjectsEndpoint = "/api/projects"

type PageController interface {
	GetIndex(c *gin.Context)
	NotFound(c *gin.Context)
}

type pageController struct {
	site model.SiteContent
}

func NewPageController(config config.Config) PageController {
	return pageController{
		site: content.Site(config.Github.Account),
	}
}

// GetIndex renders the page with the feed not loaded yet
// the page script then runs the single feed fetch of this view
func (s pageController) GetIndex(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageTemplate, web.NewPageData(s.site, model.IdleState(), ProjectsEndpoint))
}

func (s pageController) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.NewAPIError(model.ErrNotFound))
}

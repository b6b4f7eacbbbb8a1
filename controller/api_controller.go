package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/fabricio-odn/portfolio/config"
	"github.com/fabricio-odn/portfolio/content"
	"github.com/fabricio-odn/portfolio/model"
	"github.com/fabricio-odn/portfolio/service"
	"github.com/gin-gonic/gin"

	log "github.com/sirupsen/logrus"
)

type APIController interface {
	GetProjects(c *gin.Context)
	StreamProjects(c *gin.Context)
	GetContent(c *gin.Context)
	Health(c *gin.Context)
}

type apiController struct {
	feedSource service.FeedSource
	config     config.Config
}

func NewAPIController(config config.Config, feedSource service.FeedSource) APIController {
	return apiController{
		feedSource: feedSource,
		config:     config,
	}
}

// GetProjects is one page view of the feed, the request lifetime is the view lifetime
// the response is always a settled state, failures only show up as an empty list
func (s apiController) GetProjects(c *gin.Context) {
	state, err := service.LoadView(c.Request.Context(), s.feedSource, s.config.Feed.MaxItems)

	if err != nil {
		// client went away, nobody is left to render the state
		if errors.Is(err, service.ErrViewClosed) || c.Request.Context().Err() != nil {
			log.WithError(err).Debug("projects request abandoned before the feed settled")
			c.Abort()
			return
		}

		log.WithError(err).Warning("unexpected feed error, answering with an empty feed")
		state = model.SettledState(nil)
	}

	c.JSON(http.StatusOK, state)
}

// StreamProjects sends one "feed" event per state transition until the feed settles
func (s apiController) StreamProjects(c *gin.Context) {
	adapter := service.NewFeedAdapter(s.feedSource, s.config.Feed.MaxItems)
	defer adapter.Close()

	updates := adapter.Subscribe()
	adapter.Load(c.Request.Context())

	log.WithField("viewID", adapter.ViewID()).Debug("streaming feed states")

	c.Stream(func(w io.Writer) bool {
		state, ok := <-updates
		if !ok {
			return false
		}

		c.SSEvent("feed", state)
		return !state.Terminal()
	})
}

func (s apiController) GetContent(c *gin.Context) {
	c.JSON(http.StatusOK, content.Site(s.config.Github.Account))
}

func (s apiController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

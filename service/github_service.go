package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fabricio-odn/portfolio/config"
	"github.com/fabricio-odn/portfolio/metrics"
	"github.com/fabricio-odn/portfolio/model"
	"github.com/google/go-github/v66/github"

	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

// FeedSource is what a feed view needs: one call returning the raw listings
type FeedSource interface {
	FetchListings(ctx context.Context) ([]model.RepositoryListing, error)
}

type GithubService interface {
	FeedSource
	HandleRequestErrors(err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	account           string
	requestTimeout    time.Duration
}

// every page view costs exactly one call to the core API
// 60 calls per hour for non-authenticated and 5000 calls for authenticated
func NewGithubService(cfg config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		account:           cfg.Github.Account,
		requestTimeout:    cfg.Github.RequestTimeout(),
	}
}

// NewGithubClient builds the API client from the configuration
// a token is optional, the listing endpoint is public
func NewGithubClient(cfg config.Config) (*github.Client, error) {
	githubClient := github.NewClient(nil)

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		githubClient = githubClient.WithAuthToken(cfg.Github.Token)
	}

	if cfg.Github.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.Github.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GITHUB.BaseURL: %w", err)
		}

		githubClient.BaseURL = baseURL
	}

	return githubClient, nil
}

// NewRateLimiter mirrors the current github core rate limit locally
// when github can't be reached the configured fallback limit is used instead of failing the startup
func NewRateLimiter(ctx context.Context, githubClient *github.Client, fallbackLimit int) *rate.Limiter {
	limit, remaining := fallbackLimit, fallbackLimit

	log.Debug("loading current rate limit from github")
	rateLimits, _, err := githubClient.RateLimit.Get(ctx)

	if err != nil || rateLimits == nil || rateLimits.Core == nil {
		log.WithError(err).WithField("fallbackLimit", fallbackLimit).Warning("unable to load current github rate limits, using fallback")
	} else {
		limit, remaining = rateLimits.Core.Limit, rateLimits.Core.Remaining
	}

	log.WithFields(log.Fields{
		"totalAvailable":    limit,
		"remainingRequests": remaining,
	}).Debug("will setup local rate limiter with rate limits infos from github")

	if limit <= 0 {
		limit = fallbackLimit
	}

	// refill at the hourly pace github uses, burst up to the full hourly budget
	rateLimiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(limit)), limit)

	// consume what was already spent outside of this process
	if used := limit - remaining; used > 0 {
		rateLimiter.AllowN(time.Now(), used)
	}

	return rateLimiter
}

// FetchListings issues the single listing call of a feed view
// any failure is returned wrapped in model.ErrFeedUnavailable
func (s githubService) FetchListings(ctx context.Context) ([]model.RepositoryListing, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return nil, unavailable(model.ErrRateLimitReached)
	}

	log.WithField("account", s.account).Debug("fetch repositories from github")

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	start := time.Now()
	repos, _, err := s.githubClient.Repositories.ListByUser(ctx, s.account, nil)
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// cancelled view or request timeout, github was never the problem
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.WithError(ctxErr).WithField("account", s.account).Debug("repository listing interrupted")
			return nil, unavailable(fmt.Errorf("%w: %w", model.ErrFetch, ctxErr))
		}

		return nil, unavailable(s.HandleRequestErrors(err))
	}

	listings := make([]model.RepositoryListing, 0, len(repos))

	for _, r := range repos {
		if r == nil || r.ID == nil || r.Name == nil || r.HTMLURL == nil {
			log.WithField("account", s.account).Debug("repository found with invalid information")
			return nil, unavailable(model.ErrInvalidData)
		}

		listings = append(listings, toListing(r))
	}

	return listings, nil
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will update the local rate limiter to consume all available requests
// this can help us to keep the local rate limiter up to date
func (s githubService) HandleRequestErrors(err error) error {
	var rateLimitErr *github.RateLimitError
	var abuseRateLimitErr *github.AbuseRateLimitError

	// primary and secondary github limits both mean no more calls for a while
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseRateLimitErr) {
		if !s.githubRateLimiter.AllowN(time.Now(), int(s.githubRateLimiter.Tokens())) {
			return model.ErrRateLimiter
		}

		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return model.ErrRateLimitReached
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return model.ErrFetch
}

func unavailable(reason error) error {
	return fmt.Errorf("%w: %w", model.ErrFeedUnavailable, reason)
}

func toListing(r *github.Repository) model.RepositoryListing {
	return model.RepositoryListing{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.Description,
		Language:    r.Language,
		Homepage:    r.Homepage,
		HTMLURL:     r.GetHTMLURL(),
		Fork:        r.GetFork(),
		Topics:      r.Topics,
	}
}

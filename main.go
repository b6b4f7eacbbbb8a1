package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabricio-odn/portfolio/config"
	"github.com/fabricio-odn/portfolio/controller"
	"github.com/fabricio-odn/portfolio/logger"
	"github.com/fabricio-odn/portfolio/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio site with a live GitHub projects feed",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the TOML configuration (default config/config.toml)")
	root.AddCommand(serveCmd(&configPath), feedCmd(&configPath), renderCmd(&configPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath)
		},
	}
}

// bootstrap loads the configuration, configures the logger and builds the github feed source
func bootstrap(ctx context.Context, configPath string) (*config.Config, service.GithubService, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Error("unable to load configuration")
		return nil, nil, err
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to Github service to easily improve tests with mock client
	githubClient, err := service.NewGithubClient(*cfg)
	if err != nil {
		return nil, nil, err
	}

	rateCtx, cancel := context.WithTimeout(ctx, cfg.Github.RequestTimeout())
	defer cancel()

	rateLimiter := service.NewRateLimiter(rateCtx, githubClient, cfg.Github.FallbackRateLimit)

	return cfg, service.NewGithubService(*cfg, githubClient, rateLimiter), nil
}

func serve(configPath string) error {
	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, githubService, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}

	// setup handlers and define all routes
	gin.SetMode(gin.ReleaseMode)
	router := controller.NewRouter(
		controller.NewAPIController(*cfg, githubService),
		controller.NewPageController(*cfg),
	)

	server := &http.Server{
		Addr:              ":" + cfg.API.ListenPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("account", cfg.Github.Account).Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	// wait for interrupt signal (or a listen failure) to gracefully shut down the server
	// in-flight feed views are torn down with their request context
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("will shut down server ...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout())
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Application stopped gracefully !")
	return nil
}

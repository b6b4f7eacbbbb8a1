package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fabricio-odn/portfolio/content"
	"github.com/fabricio-odn/portfolio/controller"
	"github.com/fabricio-odn/portfolio/service"
	"github.com/fabricio-odn/portfolio/web"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
)

func feedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Load the projects feed once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, githubService, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}

			state, err := service.LoadView(ctx, githubService, cfg.Feed.MaxItems)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(state)
		},
	}
}

func renderCmd(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page with the feed already loaded, for static hosting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, githubService, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}

			state, err := service.LoadView(ctx, githubService, cfg.Feed.MaxItems)
			if err != nil {
				return err
			}

			var page bytes.Buffer
			data := web.NewPageData(content.Site(cfg.Github.Account), state, controller.ProjectsEndpoint)

			if err := web.Render(&page, data); err != nil {
				return fmt.Errorf("rendering page: %w", err)
			}

			formatted := gohtml.FormatBytes(page.Bytes())

			if out == "" {
				_, err = cmd.OutOrStdout().Write(formatted)
				return err
			}

			if err := os.WriteFile(out, formatted, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "page written to %s (%d projects from the feed)\n", out, len(state.Items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

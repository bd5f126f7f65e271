package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/orgball2608/insta-persona/internal/analyzer"
	"github.com/orgball2608/insta-persona/internal/analyzer/analyzerimpl"
	"github.com/orgball2608/insta-persona/internal/httpserver"
	"github.com/orgball2608/insta-persona/internal/scraper"
	"github.com/orgball2608/insta-persona/internal/scraper/scraperimpl"
	"github.com/orgball2608/insta-persona/internal/workflow"
	"github.com/orgball2608/insta-persona/internal/workflow/workflowimpl"
	"github.com/orgball2608/insta-persona/pkg/config"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			scraperimpl.New,
			fx.As(new(scraper.Client)),
		), fx.Annotate(
			analyzerimpl.New,
			fx.As(new(analyzer.Client)),
		), fx.Annotate(
			workflowimpl.New,
			fx.As(new(workflow.Client)),
		),
	),
	fx.Provide(httpserver.New),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, srv *httpserver.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed to start", "error", err)
				}
			}()

			log.Info("HTTP server listening", "port", cfg.App.Port, "env", cfg.App.Env)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

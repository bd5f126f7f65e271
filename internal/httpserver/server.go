package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-persona/internal/analyzer"
	"github.com/orgball2608/insta-persona/internal/scraper"
	"github.com/orgball2608/insta-persona/internal/workflow"
	"github.com/orgball2608/insta-persona/pkg/config"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Scraper  scraper.Client
	Analyzer analyzer.Client
	Workflow workflow.Client
}

type Server struct {
	Config   *config.Config
	Logger   logger.Logger
	Scraper  scraper.Client
	Analyzer analyzer.Client
	Workflow workflow.Client

	engine *gin.Engine
	proxy  *resty.Client
	srv    *http.Server
}

func New(opts Opts) *Server {
	if opts.Config.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	s := &Server{
		Config:   opts.Config,
		Logger:   opts.Logger,
		Scraper:  opts.Scraper,
		Analyzer: opts.Analyzer,
		Workflow: opts.Workflow,
		engine:   engine,
		proxy:    resty.New().SetTimeout(30 * time.Second),
	}
	s.registerRoutes()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler: engine,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.POST("/scrape", s.handleScrape)
	s.engine.POST("/analyze", s.handleAnalyze)
	s.engine.POST("/profile-analysis", s.handleProfileAnalysis)
	s.engine.GET("/image-proxy", s.handleImageProxy)
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

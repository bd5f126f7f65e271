package analyzerimpl

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/orgball2608/insta-persona/internal/analyzer"
	"github.com/orgball2608/insta-persona/internal/domain"
	"github.com/orgball2608/insta-persona/pkg/config"
	"github.com/orgball2608/insta-persona/pkg/errors"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type AnalyzerImpl struct {
	Config *config.Config
	Logger logger.Logger

	openai *openai.Client
	http   *resty.Client
}

func New(opts Opts) *AnalyzerImpl {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.Config.OpenAI.ApiKey),
	}
	if opts.Config.OpenAI.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.Config.OpenAI.BaseURL))
	}

	return &AnalyzerImpl{
		Config: opts.Config,
		Logger: opts.Logger,
		openai: openai.NewClient(clientOpts...),
		http:   resty.New().SetTimeout(30 * time.Second),
	}
}

var _ analyzer.Client = (*AnalyzerImpl)(nil)

func (a *AnalyzerImpl) AnalyzePhotos(ctx context.Context, photoURLs []string, userName string) (*domain.AnalysisResult, error) {
	if a.Config.OpenAI.ApiKey == "" {
		return nil, errors.WrapWithCode(errors.ErrMissingCredential, "CONFIG", "OPENAI_API_KEY environment variable is not set")
	}

	a.Logger.Info("Downloading images for analysis", "username", userName, "count", len(photoURLs))

	images := a.downloadImages(ctx, photoURLs)
	if len(images) == 0 {
		return nil, errors.Wrap(errors.ErrNoImages, "photo analysis aborted")
	}

	a.Logger.Info("Images downloaded", "username", userName, "requested", len(photoURLs), "succeeded", len(images))

	return a.requestAnalysis(ctx, images, userName)
}

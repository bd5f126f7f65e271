package workflowimpl

import (
	"context"

	"github.com/orgball2608/insta-persona/internal/analyzer"
	"github.com/orgball2608/insta-persona/internal/domain"
	"github.com/orgball2608/insta-persona/internal/scraper"
	"github.com/orgball2608/insta-persona/internal/workflow"
	"github.com/orgball2608/insta-persona/pkg/errors"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"github.com/orgball2608/insta-persona/pkg/username"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Scraper  scraper.Client
	Analyzer analyzer.Client
	Logger   logger.Logger
}

type WorkflowImpl struct {
	Scraper  scraper.Client
	Analyzer analyzer.Client
	Logger   logger.Logger
}

func New(opts Opts) *WorkflowImpl {
	return &WorkflowImpl{
		Scraper:  opts.Scraper,
		Analyzer: opts.Analyzer,
		Logger:   opts.Logger,
	}
}

var _ workflow.Client = (*WorkflowImpl)(nil)

func (w *WorkflowImpl) Run(ctx context.Context, userName string, startYear, endYear int) (*workflow.Result, error) {
	cleanUsername := username.Normalize(userName)

	w.Logger.Info("Workflow started", "username", cleanUsername, "stage", workflow.StageFetching)

	scrape, err := w.Scraper.FetchProfile(ctx, cleanUsername, startYear, endYear)
	if err != nil {
		return nil, &workflow.Error{Stage: workflow.StageFetching, Err: err}
	}

	photoURLs := extractPhotoURLs(scrape.Posts)
	if len(photoURLs) == 0 {
		return nil, &workflow.Error{
			Stage: workflow.StageFetching,
			Err:   errors.New("no posts with photos found in the selected year range"),
		}
	}

	w.Logger.Info("Workflow fetching done", "username", cleanUsername, "photos", len(photoURLs), "stage", workflow.StageAnalyzing)

	analysis, err := w.Analyzer.AnalyzePhotos(ctx, photoURLs, cleanUsername)
	if err != nil {
		return nil, &workflow.Error{Stage: workflow.StageAnalyzing, Err: err}
	}

	w.Logger.Info("Workflow complete", "username", cleanUsername, "photoCount", analysis.PhotoCount)

	return &workflow.Result{
		Stage:    workflow.StageComplete,
		Username: cleanUsername,
		Scrape:   scrape,
		Analysis: analysis,
	}, nil
}

// extractPhotoURLs pulls the display image of every post, keeping post order.
// Posts without a display URL (e.g. some video entries) are skipped.
func extractPhotoURLs(posts []domain.Post) []string {
	urls := make([]string, 0, len(posts))
	for _, post := range posts {
		if post.DisplayURL != "" {
			urls = append(urls, post.DisplayURL)
		}
	}
	return urls
}

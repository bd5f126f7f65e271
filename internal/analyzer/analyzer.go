package analyzer

import (
	"context"

	"github.com/orgball2608/insta-persona/internal/domain"
)

type Client interface {
	// AnalyzePhotos downloads the given images, submits the ones that survive
	// to the vision model and returns the parsed personality profile. The
	// caller is responsible for capping photoURLs at domain.MaxPostsLimit.
	AnalyzePhotos(ctx context.Context, photoURLs []string, userName string) (*domain.AnalysisResult, error)
}

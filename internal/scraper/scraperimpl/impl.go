package scraperimpl

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-persona/internal/domain"
	"github.com/orgball2608/insta-persona/internal/scraper"
	"github.com/orgball2608/insta-persona/pkg/config"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"github.com/orgball2608/insta-persona/pkg/username"
	"go.uber.org/fx"
)

// maxPostsPerProfile is what we ask the posts actor for. 24 is the smallest
// batch the actor accepts; filtering and capping happen on our side.
const maxPostsPerProfile = 24

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type ScraperImpl struct {
	Config *config.Config
	Logger logger.Logger

	http *resty.Client
}

func New(opts Opts) *ScraperImpl {
	client := resty.New().
		SetBaseURL(opts.Config.Apify.BaseURL).
		SetTimeout(5 * time.Minute)

	return &ScraperImpl{
		Config: opts.Config,
		Logger: opts.Logger,
		http:   client,
	}
}

var _ scraper.Client = (*ScraperImpl)(nil)

func (s *ScraperImpl) FetchProfile(ctx context.Context, userName string, startYear, endYear int) (*domain.ScrapeResult, error) {
	cleanUsername := username.Normalize(userName)

	s.Logger.Info("Scraping profile posts", "username", cleanUsername, "startYear", startYear, "endYear", endYear)

	var posts []domain.Post
	err := s.runActorSync(ctx, s.Config.Apify.PostsActor, postsActorInput{
		Profiles:           []string{cleanUsername},
		MaxPostsPerProfile: maxPostsPerProfile,
	}, &posts)
	if err != nil {
		return nil, err
	}

	totalScraped := len(posts)
	filtered := filterByYearRange(posts, startYear, endYear)
	if len(filtered) > domain.MaxPostsLimit {
		filtered = filtered[:domain.MaxPostsLimit]
	}

	s.Logger.Info("Scrape finished",
		"username", cleanUsername,
		"totalScraped", totalScraped,
		"inRange", len(filtered),
	)

	// The avatar lookup runs after the posts actor on purpose: the two calls
	// share one constrained Apify quota and must not overlap. Its failure is
	// not the caller's problem.
	picURL := s.fetchProfilePic(ctx, cleanUsername)

	return &domain.ScrapeResult{
		Posts:         filtered,
		TotalScraped:  totalScraped,
		ProfilePicURL: picURL,
	}, nil
}

// fetchProfilePic asks the profile actor for the account's avatar. Any failure
// is logged and swallowed; the result is then simply "no picture available".
func (s *ScraperImpl) fetchProfilePic(ctx context.Context, cleanUsername string) string {
	var profiles []domain.ProfileInfo
	err := s.runActorSync(ctx, s.Config.Apify.ProfileActor, profileActorInput{
		Usernames: []string{cleanUsername},
	}, &profiles)
	if err != nil {
		s.Logger.Warn("Profile picture lookup failed", "username", cleanUsername, "error", err)
		return ""
	}
	if len(profiles) == 0 {
		return ""
	}
	return profiles[0].BestPicURL()
}

// filterByYearRange keeps posts whose timestamp falls inside
// [startYear-01-01T00:00:00Z, endYear-12-31T23:59:59Z], preserving scrape order.
func filterByYearRange(posts []domain.Post, startYear, endYear int) []domain.Post {
	startTs := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	endTs := time.Date(endYear, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()

	filtered := make([]domain.Post, 0, len(posts))
	for _, post := range posts {
		if post.Timestamp >= startTs && post.Timestamp <= endTs {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

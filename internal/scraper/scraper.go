package scraper

import (
	"context"

	"github.com/orgball2608/insta-persona/internal/domain"
)

type Client interface {
	// FetchProfile scrapes the given profile's posts, keeps only those inside
	// the [startYear, endYear] UTC window and caps the result at
	// domain.MaxPostsLimit entries in scrape order.
	FetchProfile(ctx context.Context, userName string, startYear, endYear int) (*domain.ScrapeResult, error)
}

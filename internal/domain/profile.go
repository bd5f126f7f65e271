package domain

// ProfileInfo carries the avatar URLs the profile actor exposes.
type ProfileInfo struct {
	ProfilePicURL   string `json:"profilePicUrl"`
	ProfilePicURLHD string `json:"profilePicUrlHD"`
}

// BestPicURL prefers the high-definition variant when present.
func (p ProfileInfo) BestPicURL() string {
	if p.ProfilePicURLHD != "" {
		return p.ProfilePicURLHD
	}
	return p.ProfilePicURL
}

// ScrapeResult is the outcome of one profile fetch: the filtered, capped post
// list plus the raw scrape size and an optional avatar URL. An empty
// ProfilePicURL means the secondary lookup failed or returned nothing; the
// presentation falls back to an initial-letter avatar.
type ScrapeResult struct {
	Posts         []Post
	TotalScraped  int
	ProfilePicURL string
}

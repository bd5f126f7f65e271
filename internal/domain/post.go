package domain

// MaxPostsLimit caps how many posts survive filtering and therefore how many
// photos a single analysis may consume. This is the single constant of record.
const MaxPostsLimit = 10

// TaggedUser is an account tagged in a post. It has no lifecycle of its own.
type TaggedUser struct {
	FullName      string `json:"fullName"`
	ProfilePicURL string `json:"profilePicUrl"`
	Username      string `json:"username"`
}

// Post is one media item published by a profile, as returned by the scraping
// actor. Immutable once retrieved; never persisted.
type Post struct {
	ID               string       `json:"id"`
	Username         string       `json:"username"`
	Shortcode        string       `json:"shortcode"`
	Caption          string       `json:"caption"`
	Timestamp        int64        `json:"timestamp"` // UNIX seconds, UTC
	Likes            int          `json:"likes"`
	Comments         int          `json:"comments"`
	MediaType        string       `json:"mediaType"`
	DisplayURL       string       `json:"displayUrl"`
	ThumbnailURL     string       `json:"thumbnailUrl"`
	DimensionsWidth  int          `json:"dimensions_width"`
	DimensionsHeight int          `json:"dimensions_height"`
	TaggedUsers      []TaggedUser `json:"taggedUsers"`
	CommentsDisabled bool         `json:"commentsDisabled"`
	Pinned           bool         `json:"pinned"`
	LocationName     string       `json:"locationName,omitempty"`
}

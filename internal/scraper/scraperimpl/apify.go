package scraperimpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orgball2608/insta-persona/pkg/errors"
)

type postsActorInput struct {
	Profiles           []string `json:"profiles"`
	MaxPostsPerProfile int      `json:"maxPostsPerProfile"`
}

type profileActorInput struct {
	Usernames []string `json:"usernames"`
}

type apifyError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// runActorSync starts an actor run and waits for its dataset items in a single
// request, decoding them into out. There is no retry: a failed run surfaces as
// an upstream error carrying Apify's own message.
func (s *ScraperImpl) runActorSync(ctx context.Context, actorID string, input any, out any) error {
	if s.Config.Apify.Token == "" {
		return errors.WrapWithCode(errors.ErrMissingCredential, "CONFIG", "APIFY_TOKEN environment variable is not set")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("token", s.Config.Apify.Token).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		Post(fmt.Sprintf("/v2/acts/%s/run-sync-get-dataset-items", actorID))
	if err != nil {
		return errors.WrapWithCode(errors.ErrUpstream, "APIFY", fmt.Sprintf("actor %s call failed: %v", actorID, err))
	}

	if resp.IsError() {
		msg := fmt.Sprintf("actor %s returned status %d", actorID, resp.StatusCode())
		var apiErr apifyError
		if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
			msg = fmt.Sprintf("actor %s failed: %s", actorID, apiErr.Error.Message)
		}
		return errors.WrapWithCode(errors.ErrUpstream, "APIFY", msg)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.WrapWithCode(errors.ErrUpstream, "APIFY", fmt.Sprintf("actor %s returned an unreadable dataset: %v", actorID, err))
	}
	return nil
}

package analyzerimpl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgball2608/insta-persona/pkg/config"
	"github.com/orgball2608/insta-persona/pkg/errors"
	"github.com/orgball2608/insta-persona/pkg/logger"
)

// fakeModel is a minimal stand-in for the chat completions endpoint. It
// records whatever user content parts the request carried.
type fakeModel struct {
	replyContent string
	requests     int
	userParts    []map[string]any
}

func (f *fakeModel) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		f.requests++

		var body struct {
			Messages []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)

		f.userParts = nil
		require.NoError(t, json.Unmarshal(body.Messages[1].Content, &f.userParts))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": f.replyContent,
					},
				},
			},
		})
	})
	return mux
}

func (f *fakeModel) imageParts() []map[string]any {
	var parts []map[string]any
	for _, p := range f.userParts {
		if p["type"] == "image_url" {
			parts = append(parts, p)
		}
	}
	return parts
}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/photo-1.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes-1"))
	})
	mux.HandleFunc("/photo-2.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes-2"))
	})
	mux.HandleFunc("/gone.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func newTestAnalyzer(t *testing.T, modelURL string) *AnalyzerImpl {
	t.Helper()

	cfg := &config.Config{}
	cfg.OpenAI.ApiKey = "test-key"
	cfg.OpenAI.BaseURL = modelURL + "/"
	cfg.OpenAI.Model = "gpt-4o-mini"

	return New(Opts{
		Config: cfg,
		Logger: logger.New(logger.Opts{Env: "test"}),
	})
}

const fullReply = `{
	"personalityTraits": ["creative", "adventurous", "social", "curious", "warm"],
	"interests": ["travel", "photography", "food", "nature", "music"],
	"mbtiType": "ENFP",
	"mbtiExplanation": "Spontaneous group shots and varied settings suggest extroverted intuition.",
	"overallSummary": "An outgoing explorer who documents shared experiences."
}`

func TestAnalyzePhotos_CountsOnlySuccessfulDownloads(t *testing.T) {
	images := newImageServer(t)
	defer images.Close()

	model := &fakeModel{replyContent: fullReply}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	result, err := a.AnalyzePhotos(context.Background(), []string{
		images.URL + "/photo-1.jpg",
		images.URL + "/gone.jpg",
		images.URL + "/photo-2.png",
	}, "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, result.PhotoCount, "photoCount must reflect downloads, not requested URLs")
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "ENFP", result.MBTIType)
	assert.Len(t, result.PersonalityTraits, 5)

	parts := model.imageParts()
	require.Len(t, parts, 2, "only surviving images reach the model")

	// Order of the surviving images follows the original URL order, and the
	// payload is a content-type-tagged data URL.
	first, _ := parts[0]["image_url"].(map[string]any)
	require.NotNil(t, first)
	assert.True(t, strings.HasPrefix(first["url"].(string), "data:image/jpeg;base64,"))
	assert.Equal(t, "low", first["detail"])

	second, _ := parts[1]["image_url"].(map[string]any)
	require.NotNil(t, second)
	assert.True(t, strings.HasPrefix(second["url"].(string), "data:image/png;base64,"))
}

func TestAnalyzePhotos_AllDownloadsFailed(t *testing.T) {
	images := newImageServer(t)
	defer images.Close()

	model := &fakeModel{replyContent: fullReply}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	_, err := a.AnalyzePhotos(context.Background(), []string{
		images.URL + "/gone.jpg",
		images.URL + "/also-gone.jpg",
	}, "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoImages))
	assert.Zero(t, model.requests, "no model call when nothing downloaded")
}

func TestAnalyzePhotos_MissingFieldsGetDefaults(t *testing.T) {
	images := newImageServer(t)
	defer images.Close()

	// Reply without interests, mbtiType or summary.
	model := &fakeModel{replyContent: `{"personalityTraits": ["quiet"]}`}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	result, err := a.AnalyzePhotos(context.Background(), []string{images.URL + "/photo-1.jpg"}, "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"quiet"}, result.PersonalityTraits)
	assert.NotNil(t, result.Interests)
	assert.Empty(t, result.Interests)
	assert.Equal(t, "Unknown", result.MBTIType)
	assert.Empty(t, result.MBTIExplanation)
	assert.Empty(t, result.OverallSummary)
	assert.Equal(t, 1, result.PhotoCount)
}

func TestAnalyzePhotos_EmptyModelReply(t *testing.T) {
	images := newImageServer(t)
	defer images.Close()

	model := &fakeModel{replyContent: ""}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	_, err := a.AnalyzePhotos(context.Background(), []string{images.URL + "/photo-1.jpg"}, "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyModelReply))
}

func TestAnalyzePhotos_MalformedModelReply(t *testing.T) {
	images := newImageServer(t)
	defer images.Close()

	model := &fakeModel{replyContent: "I cannot analyze these photos."}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	_, err := a.AnalyzePhotos(context.Background(), []string{images.URL + "/photo-1.jpg"}, "alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestAnalyzePhotos_MissingApiKeyIsFatal(t *testing.T) {
	model := &fakeModel{replyContent: fullReply}
	modelServer := httptest.NewServer(model.handler(t))
	defer modelServer.Close()

	a := newTestAnalyzer(t, modelServer.URL)
	a.Config.OpenAI.ApiKey = ""

	_, err := a.AnalyzePhotos(context.Background(), []string{"https://cdn.example.com/p.jpg"}, "alice")
	require.Error(t, err)
	assert.True(t, errors.IsMissingCredential(err))
	assert.Zero(t, model.requests)
}

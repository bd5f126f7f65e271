package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-persona/internal/domain"
	"github.com/orgball2608/insta-persona/internal/workflow"
	"github.com/orgball2608/insta-persona/pkg/errors"
	"github.com/orgball2608/insta-persona/pkg/username"
)

// scrapeRequest keeps the year fields untyped: clients send them as numbers
// or as strings, and both must be accepted.
type scrapeRequest struct {
	Username  any `json:"username"`
	StartYear any `json:"startYear"`
	EndYear   any `json:"endYear"`
}

type scrapeResponse struct {
	Posts         []domain.Post `json:"posts"`
	Username      string        `json:"username"`
	TotalScraped  int           `json:"totalScraped"`
	FilteredCount int           `json:"filteredCount"`
	ProfilePicURL string        `json:"profilePicUrl,omitempty"`
}

type analyzeRequest struct {
	PhotoURLs []string `json:"photoUrls"`
	Username  string   `json:"username"`
}

type analyzeResponse struct {
	Success  bool                   `json:"success"`
	Analysis *domain.AnalysisResult `json:"analysis,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// validateScrapeInput turns a raw scrape request into a clean username and
// year pair, or an ErrInvalidInput rejection with a human-readable message.
func validateScrapeInput(req scrapeRequest) (cleanUsername string, startYear, endYear int, vErr *errors.Error) {
	rawUsername, ok := req.Username.(string)
	if !ok || username.Normalize(rawUsername) == "" {
		return "", 0, 0, errors.InvalidInput("Username is required")
	}
	if req.StartYear == nil || req.EndYear == nil {
		return "", 0, 0, errors.InvalidInput("Start year and end year are required")
	}

	start, okStart := parseYear(req.StartYear)
	end, okEnd := parseYear(req.EndYear)
	if !okStart || !okEnd {
		return "", 0, 0, errors.InvalidInput("Invalid year format")
	}
	if start > end {
		return "", 0, 0, errors.InvalidInput("Start year cannot be after end year")
	}
	return username.Normalize(rawUsername), start, end, nil
}

// statusFor maps the error taxonomy onto HTTP statuses: validation errors are
// the caller's fault, everything else is a 500.
func statusFor(err error) int {
	if errors.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseYear accepts a JSON number or a numeric string.
func parseYear(v any) (int, bool) {
	switch y := v.(type) {
	case float64:
		if y != math.Trunc(y) {
			return 0, false
		}
		return int(y), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (s *Server) handleScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cleanUsername, start, end, vErr := validateScrapeInput(req)
	if vErr != nil {
		c.JSON(statusFor(vErr), gin.H{"error": vErr.Message})
		return
	}

	result, err := s.Scraper.FetchProfile(c.Request.Context(), cleanUsername, start, end)
	if err != nil {
		s.Logger.Error("Scrape failed", "username", cleanUsername, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.GetMessage(err)})
		return
	}

	posts := result.Posts
	if posts == nil {
		posts = []domain.Post{}
	}

	c.JSON(http.StatusOK, scrapeResponse{
		Posts:         posts,
		Username:      cleanUsername,
		TotalScraped:  result.TotalScraped,
		FilteredCount: len(posts),
		ProfilePicURL: result.ProfilePicURL,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.PhotoURLs) == 0 {
		vErr := errors.InvalidInput("Photo URLs are required")
		c.JSON(statusFor(vErr), gin.H{"error": vErr.Message})
		return
	}
	cleanUsername := username.Normalize(req.Username)
	if cleanUsername == "" {
		vErr := errors.InvalidInput("Username is required")
		c.JSON(statusFor(vErr), gin.H{"error": vErr.Message})
		return
	}

	photoURLs := req.PhotoURLs
	if len(photoURLs) > domain.MaxPostsLimit {
		photoURLs = photoURLs[:domain.MaxPostsLimit]
	}

	analysis, err := s.Analyzer.AnalyzePhotos(c.Request.Context(), photoURLs, cleanUsername)
	if err != nil {
		s.Logger.Error("Analysis failed", "username", cleanUsername, "error", err)
		c.JSON(http.StatusInternalServerError, analyzeResponse{Success: false, Error: errors.GetMessage(err)})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{Success: true, Analysis: analysis})
}

func (s *Server) handleProfileAnalysis(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cleanUsername, start, end, vErr := validateScrapeInput(req)
	if vErr != nil {
		c.JSON(statusFor(vErr), gin.H{"error": vErr.Message})
		return
	}

	result, err := s.Workflow.Run(c.Request.Context(), cleanUsername, start, end)
	if err != nil {
		stage := ""
		var wErr *workflow.Error
		if errors.As(err, &wErr) {
			stage = string(wErr.Stage)
		}
		s.Logger.Error("Profile analysis failed", "username", cleanUsername, "stage", stage, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"stage":   stage,
			"error":   errors.GetMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stage":   result.Stage,
		"profile": gin.H{
			"username":      result.Username,
			"totalScraped":  result.Scrape.TotalScraped,
			"filteredCount": len(result.Scrape.Posts),
			"profilePicUrl": result.Scrape.ProfilePicURL,
		},
		"analysis": result.Analysis,
	})
}

// handleImageProxy fetches a remote image server-side and hands its bytes back
// with the upstream content type, so the browser never hotlinks the CDN.
func (s *Server) handleImageProxy(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	resp, err := s.proxy.R().SetContext(c.Request.Context()).Get(rawURL)
	if err != nil {
		s.Logger.Warn("Image proxy fetch failed", "url", rawURL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("failed to fetch image: %v", err)})
		return
	}
	if resp.IsError() {
		c.JSON(resp.StatusCode(), gin.H{"error": fmt.Sprintf("upstream returned status %d", resp.StatusCode())})
		return
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, resp.Body())
}

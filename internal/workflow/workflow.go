package workflow

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-persona/internal/domain"
)

// Stage names the observable phases of a profile analysis.
type Stage string

const (
	StageFetching  Stage = "fetching"
	StageAnalyzing Stage = "analyzing"
	StageComplete  Stage = "complete"
)

// Result is a finished analysis: the scrape that fed it plus the model's
// verdict. Stage is always StageComplete on a non-error return.
type Result struct {
	Stage    Stage
	Username string
	Scrape   *domain.ScrapeResult
	Analysis *domain.AnalysisResult
}

// Error marks which phase a failed run died in. The run aborts at the first
// failing phase; the remaining one never starts.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("workflow failed while %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Client interface {
	// Run executes the full fetch-then-analyze sequence for one profile.
	Run(ctx context.Context, userName string, startYear, endYear int) (*Result, error)
}

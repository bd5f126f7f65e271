package domain

// AnalysisResult is the personality profile produced by the vision model for
// one batch of photos. Trait and interest lists keep whatever order the model
// returned. PhotoCount is the number of images that actually reached the
// model, not the number of URLs requested.
type AnalysisResult struct {
	Username          string   `json:"username"`
	PersonalityTraits []string `json:"personalityTraits"`
	Interests         []string `json:"interests"`
	MBTIType          string   `json:"mbtiType"`
	MBTIExplanation   string   `json:"mbtiExplanation"`
	OverallSummary    string   `json:"overallSummary"`
	PhotoCount        int      `json:"photoCount"`
}

package analyzerimpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/orgball2608/insta-persona/internal/domain"
	"github.com/orgball2608/insta-persona/pkg/errors"
)

const maxCompletionTokens = 1000

const systemPrompt = `You are an expert personality analyst and psychologist. Analyze the provided Instagram photos to determine the person's personality traits, interests, and MBTI type.

Based on visual cues like:
- Activities shown in photos
- Aesthetic preferences and style
- Locations and environments
- Social interactions
- Hobbies and interests visible
- Overall mood and tone of photos

Provide your analysis in the following JSON format:
{
  "personalityTraits": ["trait1", "trait2", "trait3", "trait4", "trait5"],
  "interests": ["interest1", "interest2", "interest3", "interest4", "interest5"],
  "mbtiType": "XXXX",
  "mbtiExplanation": "Brief explanation of why this MBTI type fits based on the photos",
  "overallSummary": "A 2-3 sentence summary of this person's personality and lifestyle based on their photos"
}

Be insightful and specific. Base your analysis only on what you can observe in the photos.`

// modelReply mirrors the JSON shape the system prompt asks for. Absent fields
// stay at their zero value and get defaulted after parsing.
type modelReply struct {
	PersonalityTraits []string `json:"personalityTraits"`
	Interests         []string `json:"interests"`
	MBTIType          string   `json:"mbtiType"`
	MBTIExplanation   string   `json:"mbtiExplanation"`
	OverallSummary    string   `json:"overallSummary"`
}

// requestAnalysis sends one vision request carrying every downloaded image and
// parses the model's JSON reply. Images are sent at low detail to bound cost.
func (a *AnalyzerImpl) requestAnalysis(ctx context.Context, images []string, userName string) (*domain.AnalysisResult, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	parts = append(parts, openai.TextPart(fmt.Sprintf(
		"Analyze these %d Instagram photos from @%s and determine their personality traits, interests, and MBTI type. Respond with valid JSON only.",
		len(images), userName,
	)))
	for _, dataURL := range images {
		parts = append(parts, openai.ChatCompletionContentPartImageParam{
			Type: openai.F(openai.ChatCompletionContentPartImageTypeImageURL),
			ImageURL: openai.F(openai.ChatCompletionContentPartImageImageURLParam{
				URL:    openai.F(dataURL),
				Detail: openai.F(openai.ChatCompletionContentPartImageImageURLDetailLow),
			}),
		})
	}

	a.Logger.Info("Requesting personality analysis", "username", userName, "model", a.Config.OpenAI.Model, "imageCount", len(images))

	completion, err := a.openai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(openai.ChatModel(a.Config.OpenAI.Model)),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessageParts(parts...),
		}),
		MaxTokens: openai.Int(maxCompletionTokens),
		ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		),
	})
	if err != nil {
		return nil, errors.WrapWithCode(errors.ErrUpstream, "OPENAI", fmt.Sprintf("model call failed: %v", err))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, errors.Wrap(errors.ErrEmptyModelReply, "model returned an empty completion")
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &reply); err != nil {
		return nil, errors.WrapWithCode(errors.ErrUpstream, "OPENAI", fmt.Sprintf("model reply is not valid JSON: %v", err))
	}

	result := &domain.AnalysisResult{
		Username:          userName,
		PersonalityTraits: reply.PersonalityTraits,
		Interests:         reply.Interests,
		MBTIType:          reply.MBTIType,
		MBTIExplanation:   reply.MBTIExplanation,
		OverallSummary:    reply.OverallSummary,
		PhotoCount:        len(images),
	}
	if result.PersonalityTraits == nil {
		result.PersonalityTraits = []string{}
	}
	if result.Interests == nil {
		result.Interests = []string{}
	}
	if result.MBTIType == "" {
		result.MBTIType = "Unknown"
	}
	return result, nil
}

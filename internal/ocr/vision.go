package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Extractor produces raw transcription text from a chart photo. The output
// is untrusted: callers must run it through ParseRows and accept whatever
// survives.
type Extractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

const transcriptionPrompt = `You are transcribing a handwritten or printed frequency volume chart (a bladder diary table).

The table columns are: activity, time (24-hour HH:MM), fluid intake in ml, urine output in ml, leak (Y or N).

REQUIREMENTS:
- Output one line per table row, in table order
- Format each line exactly as: <activity text> <HH:MM> <intake> <output> <Y or N>
- Use a single space between fields, intake and output as plain integers
- If a row is unreadable, output a single "-" for that line, do not skip it
- Do not output headers, explanations, or anything else`

// Options configures the vision-based extractor. At least one provider key
// must be set.
type Options struct {
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// VisionExtractor transcribes chart photos with a vision model, Gemini
// first with an OpenAI fallback when both are configured.
type VisionExtractor struct {
	geminiClient *genai.Client
	geminiModel  string
	openaiClient *openai.Client
	openaiModel  string
}

// NewVisionExtractor builds the extractor from whichever provider keys are
// present.
func NewVisionExtractor(ctx context.Context, opts Options) (*VisionExtractor, error) {
	e := &VisionExtractor{
		geminiModel: opts.GeminiModel,
		openaiModel: opts.OpenAIModel,
	}

	if opts.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(opts.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		e.geminiClient = client
	}
	if opts.OpenAIAPIKey != "" {
		e.openaiClient = openai.NewClient(opts.OpenAIAPIKey)
	}

	if e.geminiClient == nil && e.openaiClient == nil {
		return nil, errors.New("no OCR provider configured")
	}
	return e, nil
}

// ExtractText transcribes the image. A failure here is terminal for this
// upload only; the caller reports it and keeps the manually entered form.
func (e *VisionExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.geminiClient != nil {
		text, err := e.extractWithGemini(ctx, image, mimeType)
		if err == nil {
			return text, nil
		}
		if e.openaiClient == nil {
			return "", err
		}
	}
	return e.extractWithOpenAI(ctx, image, mimeType)
}

func (e *VisionExtractor) extractWithGemini(ctx context.Context, image []byte, mimeType string) (string, error) {
	model := e.geminiClient.GenerativeModel(e.geminiModel)

	img := genai.ImageData(strings.TrimPrefix(mimeType, "image/"), image)
	resp, err := model.GenerateContent(ctx, img, genai.Text(transcriptionPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (e *VisionExtractor) extractWithOpenAI(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := e.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: transcriptionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		MaxTokens: 1500,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

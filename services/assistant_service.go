package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/config"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

const (
	// offlineReply is returned without any network call when no API key is
	// configured.
	offlineReply = "I am currently offline as my AI services are not configured. Please try again later."

	// fallbackReply masks every transport or provider failure.
	fallbackReply = "I'm sorry, I'm having trouble connecting to my brain right now. Please try again in a moment."

	systemInstruction = `You are 'RailConnect AI', a helpful and friendly assistant for an Indian Railways booking app. Your goal is to answer user queries about train travel in India.
- Be concise and clear in your responses.
- If a user asks to find a train, you can use the example train data provided to give a realistic answer.
- You cannot perform actual bookings, but you can guide users on how to do it in the app.
- For queries about train status, PNR, or real-time information, state that you cannot access real-time data but can provide general information.
- Acknowledge that you are an AI assistant and the data is for demonstration purposes.
`

	assistantTemperature = 0.7
	assistantTopP        = 1.0
)

// AssistantService bridges chat questions to the Gemini completion API. All
// failures are converted to fixed reply strings at this boundary; callers
// never see a transport error.
type AssistantService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *logrus.Logger
}

// NewAssistantService creates the bridge. A missing API key is a valid
// state: Ask degrades to a fixed offline notice.
func NewAssistantService(cfg *config.Config, logger *logrus.Logger) *AssistantService {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("assistant running without API key, replies will be offline notices")
	}
	return &AssistantService{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		model:   cfg.GeminiModel,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the user's question, plus the currently displayed train listings
// as context, and returns the assistant's reply text. It always returns a
// usable string.
func (s *AssistantService) Ask(ctx context.Context, userText string, trainContext []models.Train) string {
	if s.apiKey == "" {
		return offlineReply
	}

	reply, err := s.generate(ctx, buildPrompt(userText, trainContext))
	if err != nil {
		s.logger.WithError(err).Warn("assistant request failed")
		return fallbackReply
	}
	return reply
}

func (s *AssistantService) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: assistantTemperature,
			TopP:        assistantTopP,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// buildPrompt appends one context line per displayed train to the user's
// question.
func buildPrompt(userText string, trains []models.Train) string {
	if len(trains) == 0 {
		return userText
	}

	var b strings.Builder
	b.WriteString(userText)
	b.WriteString("\n\nFor context, here are some trains currently being displayed to the user: \n")
	for _, t := range trains {
		fmt.Fprintf(&b, "- %s (%s) from %s to %s.\n", t.TrainName, t.TrainNumber, t.From, t.To)
	}
	return b.String()
}

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

const maxGeneratedInsights = 3

// GeminiService implements adapter.InsightService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateInsights asks Gemini for short observations about the summary.
func (s *GeminiService) GenerateInsights(ctx context.Context, summary *adapter.SpendingSummary) ([]*adapter.Insight, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildInsightPrompt(summary)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	insights, err := parseInsights(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return insights, nil
}

func buildInsightPrompt(summary *adapter.SpendingSummary) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance assistant. Analyze the summary below and write short, practical insights.

RULES:
- Return at most 3 insights.
- Each insight has a type: "warning", "info", "success" or "tip".
- Titles have at most 5 words. Messages have at most 2 sentences.
- Mention amounts exactly as they appear in the summary.
- "action" is an optional short call to action, or an empty string.

SUMMARY:
`)
	fmt.Fprintf(&sb, "- Records: %d\n", summary.RecordCount)
	fmt.Fprintf(&sb, "- Period: %s to %s\n", summary.FirstDate, summary.LastDate)
	fmt.Fprintf(&sb, "- Total income: %s\n", summary.TotalIncome)
	fmt.Fprintf(&sb, "- Total expenses: %s\n", summary.TotalExpenses)
	fmt.Fprintf(&sb, "- Balance: %s\n", summary.Balance)

	writeCategories(&sb, "Top expense categories", summary.TopExpenses)
	writeCategories(&sb, "Top income categories", summary.TopIncome)

	sb.WriteString(`
Respond with a JSON array only, no additional text. Each item:
{"type": "warning|info|success|tip", "title": "string", "message": "string", "action": "string"}
`)
	return sb.String()
}

func writeCategories(sb *strings.Builder, title string, categories []adapter.CategorySpend) {
	fmt.Fprintf(sb, "\n%s:\n", title)
	if len(categories) == 0 {
		sb.WriteString("(none)\n")
		return
	}
	for _, c := range categories {
		fmt.Fprintf(sb, "- %s: %s (%.1f%%)\n", c.Category, c.Amount, c.Percentage)
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiInsight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// parseInsights decodes the model output, tolerating markdown fences.
// Items without a title or message are skipped and unknown types become info.
func parseInsights(text string) ([]*adapter.Insight, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []geminiInsight
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	insights := make([]*adapter.Insight, 0, maxGeneratedInsights)
	for _, item := range raw {
		if len(insights) == maxGeneratedInsights {
			break
		}
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Message) == "" {
			continue
		}

		insightType := adapter.InsightType(item.Type)
		switch insightType {
		case adapter.InsightWarning, adapter.InsightInfo, adapter.InsightSuccess, adapter.InsightTip:
		default:
			insightType = adapter.InsightInfo
		}

		insights = append(insights, &adapter.Insight{
			ID:      "ai-" + uuid.NewString(),
			Type:    insightType,
			Title:   strings.TrimSpace(item.Title),
			Message: strings.TrimSpace(item.Message),
			Action:  strings.TrimSpace(item.Action),
		})
	}
	return insights, nil
}

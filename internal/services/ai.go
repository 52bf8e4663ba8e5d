package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/pkg/logger"
	"github.com/teamtrack/backend/pkg/response"
	"google.golang.org/genai"
)

// jsonArrayRegex pulls the outermost JSON array out of a response that
// wraps it in prose or markdown fences.
var jsonArrayRegex = regexp.MustCompile(`(?s)\[.*\]`)

const aiCallTimeout = 60 * time.Second

type AIService struct {
	cfg *config.AIConfig
}

func NewAIService(cfg *config.AIConfig) *AIService {
	return &AIService{cfg: cfg}
}

// UserStory is a drafted agile story produced from a feature description.
type UserStory struct {
	Title              string   `json:"title"`
	Story              string   `json:"story"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Priority           string   `json:"priority"`
	EstimatedEffort    string   `json:"estimatedEffort"`
}

// TaskDraft is a drafted implementation task for a user story.
type TaskDraft struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimatedHours"`
	Category       string  `json:"category"`
}

type GenerateStoriesRequest struct {
	ProjectDescription string `json:"projectDescription" binding:"required"`
	ProjectType        string `json:"projectType"`
	TargetAudience     string `json:"targetAudience"`
	Features           string `json:"features"`
}

type GenerateTasksRequest struct {
	UserStory      string `json:"userStory" binding:"required"`
	ProjectContext string `json:"projectContext"`
}

// GenerateStories drafts 8-12 user stories from a free-form project
// description.
func (s *AIService) GenerateStories(ctx context.Context, req *GenerateStoriesRequest) ([]UserStory, error) {
	projectType := req.ProjectType
	if projectType == "" {
		projectType = "Web Application"
	}
	targetAudience := req.TargetAudience
	if targetAudience == "" {
		targetAudience = "General users"
	}
	features := req.Features
	if features == "" {
		features = "Standard features"
	}

	prompt := fmt.Sprintf(`You are a product manager expert at writing user stories. Generate comprehensive user stories for a software project based on the following information:

Project Description: %s
Project Type: %s
Target Audience: %s
Key Features: %s

Please generate 8-12 user stories following this format:
- Title: Brief descriptive title
- Story: As a [user type], I want [goal] so that [benefit]
- Acceptance Criteria: 3-5 specific, testable criteria
- Priority: High/Medium/Low
- Estimated Effort: Small/Medium/Large

Make sure the user stories are:
1. Specific and actionable
2. Focused on user value
3. Testable with clear acceptance criteria
4. Properly prioritized
5. Cover different aspects of the project (authentication, core features, admin functions, etc.)

Format the response as a JSON array of objects with the following structure:
{
  "title": "string",
  "story": "string",
  "acceptanceCriteria": ["string", "string", "string"],
  "priority": "High|Medium|Low",
  "estimatedEffort": "Small|Medium|Large"
}

Return only the JSON array, no additional text.`, req.ProjectDescription, projectType, targetAudience, features)

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var stories []UserStory
	if err := parseJSONArray(raw, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GenerateTasks drafts 3-8 implementation tasks for a single user story.
func (s *AIService) GenerateTasks(ctx context.Context, req *GenerateTasksRequest) ([]TaskDraft, error) {
	projectContext := req.ProjectContext
	if projectContext == "" {
		projectContext = "Web application development"
	}

	prompt := fmt.Sprintf(`You are a technical project manager. Break down the following user story into specific, actionable development tasks.

User Story: %s
Project Context: %s

Generate 3-8 development tasks that would be needed to implement this user story. Each task should be:
1. Specific and actionable
2. Focused on a single responsibility
3. Implementable by a developer
4. Include technical considerations

For each task, provide:
- Title: Clear, concise task title
- Description: Detailed description of what needs to be done
- Priority: High/Medium/Low (based on dependencies and importance)
- Estimated Hours: 1-8 hours realistic estimate
- Category: Frontend/Backend/Database/Testing/DevOps

Format the response as a JSON array of objects with this structure:
{
  "title": "string",
  "description": "string",
  "priority": "High|Medium|Low",
  "estimatedHours": number,
  "category": "Frontend|Backend|Database|Testing|DevOps"
}

Return only the JSON array, no additional text.`, req.UserStory, projectContext)

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var tasks []TaskDraft
	if err := parseJSONArray(raw, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// complete dispatches one prompt to the configured provider and returns the
// raw text. Every call is bounded so a stalled upstream cannot hold a
// request handler open indefinitely.
func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	logger.Infof("[AI] Using provider: %s, model: %s", s.cfg.Provider, s.cfg.Model)

	switch s.cfg.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "ollama":
		return s.callOllama(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	default:
		// openai and OpenAI-compatible endpoints
		return s.callOpenAI(ctx, prompt)
	}
}

func (s *AIService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.APIKey)
	if s.cfg.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		logger.Infof("[AI] OpenAI API error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *AIService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	model := s.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		logger.Infof("[AI] Anthropic API error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

func (s *AIService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.cfg.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		logger.Infof("[AI] Ollama API error: %v", err)
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

func (s *AIService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		logger.Infof("[AI] Gemini API error: %v", err)
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// parseJSONArray unmarshals raw into out. Models frequently wrap the array
// in prose or fences despite instructions, so a failed parse falls back to
// extracting the outermost bracketed span before giving up.
func parseJSONArray(raw string, out interface{}) error {
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), out); err == nil {
		return nil
	}

	match := jsonArrayRegex.FindString(trimmed)
	if match == "" {
		return response.NewUpstreamParse("failed to parse AI response")
	}
	if err := json.Unmarshal([]byte(match), out); err != nil {
		return response.NewUpstreamParse("failed to parse AI response")
	}
	return nil
}

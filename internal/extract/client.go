package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/usecase"
)

const systemPrompt = `You extract actionable tasks from the user's notes.
Respond with a JSON array only. Each element has:
"title" (string), "priority" (low|medium|high|urgent),
"estimated_duration" (integer minutes, omit if unknown).
Return [] when the text contains no tasks.`

// Config holds settings for the task-extraction service.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat-completions endpoint to turn
// free text into candidate tasks. The engine treats it as a black box;
// any backend speaking the same wire format will do.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Extract(ctx context.Context, content string) ([]usecase.TaskDraft, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "extraction service unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(domain.ErrCodeUnavailable,
			fmt.Sprintf("extraction service returned %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "malformed extraction response", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, domain.NewError(domain.ErrCodeInternal, "extraction response has no choices")
	}

	return parseDrafts(parsed.Choices[0].Message.Content)
}

// parseDrafts pulls the JSON array out of the model's reply, tolerating
// markdown code fences and surrounding prose.
func parseDrafts(reply string) ([]usecase.TaskDraft, error) {
	cleaned := stripCodeFences(reply)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, domain.NewError(domain.ErrCodeInternal, "no JSON array in extraction reply")
	}

	var drafts []usecase.TaskDraft
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &drafts); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "invalid extraction JSON", err)
	}

	valid := drafts[:0]
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = domain.PriorityMedium
		}
		if d.EstimatedDuration != nil && *d.EstimatedDuration <= 0 {
			d.EstimatedDuration = nil
		}
		valid = append(valid, d)
	}
	return valid, nil
}

func stripCodeFences(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var _ usecase.TaskExtractor = (*Client)(nil)

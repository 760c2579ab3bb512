// Package grader scores free-text answers with a chat-completion model
// and owns the scoreboard arithmetic (special tiles, win threshold).
package grader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Grader struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func New(cfg Config) (*Grader, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing grading API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "openai/gpt-oss-20b:free"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Grader{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Evaluation is the model's verdict on one answer.
type Evaluation struct {
	Score    int
	Feedback string
}

const rubric = `You are an encouraging and supportive teacher. Be objective and fair; do not be
overly strict about formatting. If the standard answer is a placeholder like
"Personal Answer", give an objective score based solely on the student answer.

Question: %s
Standard Answer: %s
Student Answer: %s

Task:
1. Rate the student answer from 0 to 10.
2. Provide a very short feedback (max 2 sentences).

Respond strictly as JSON:
{
    "score": <number>,
    "feedback": "<text>"
}`

// Grade asks the model to score userAnswer against the reference answer.
func (g *Grader) Grade(ctx context.Context, question, referenceAnswer, userAnswer string) (Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(rubric, question, referenceAnswer, userAnswer),
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Evaluation{}, fmt.Errorf("calling grading model: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Evaluation{}, errors.New("empty response from grading model")
	}

	return parseEvaluation(resp.Choices[0].Message.Content), nil
}

// Models wrap the JSON in prose or code fences often enough that we
// fish the first {...} block out of the reply instead of decoding it
// verbatim.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

func parseEvaluation(content string) Evaluation {
	eval := Evaluation{Feedback: strings.TrimSpace(content)}

	block := jsonBlock.FindString(content)
	if block == "" {
		return eval
	}

	var parsed struct {
		Score    json.Number `json:"score"`
		Feedback string      `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return eval
	}

	if f, err := parsed.Score.Float64(); err == nil {
		eval.Score = int(f)
	}
	if eval.Score < 0 {
		eval.Score = 0
	}
	if eval.Score > 10 {
		eval.Score = 10
	}
	if parsed.Feedback != "" {
		eval.Feedback = parsed.Feedback
	}
	return eval
}

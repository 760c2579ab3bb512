// Package gateway is the HTTP client for the quiz API. It implements
// session.Gateway, mapping each operation onto one endpoint and every
// failure onto a tagged *Error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/playwheel/doublespin/internal/doublespin"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL. Pass a nil httpClient
// to use a default with a 30 s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) ListGroups(ctx context.Context) ([]doublespin.GroupSummary, error) {
	var resp struct {
		Groups []doublespin.GroupSummary `json:"groups"`
	}
	if err := c.do(ctx, "list groups", http.MethodGet, "/api/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *Client) DrawGroup(ctx context.Context, excludeGroups []string) (string, error) {
	req := struct {
		ExcludeGroups []string `json:"excludeGroups,omitempty"`
	}{ExcludeGroups: excludeGroups}

	var resp struct {
		Group string `json:"group"`
	}
	if err := c.do(ctx, "draw group", http.MethodPost, "/api/spin-group", req, &resp); err != nil {
		return "", err
	}
	return resp.Group, nil
}

func (c *Client) DrawQuestion(ctx context.Context, group string, excludeQuestions []string) (doublespin.Question, error) {
	req := struct {
		Group              string   `json:"group"`
		ExcludeQuestionIDs []string `json:"excludeQuestionIds,omitempty"`
	}{Group: group, ExcludeQuestionIDs: excludeQuestions}

	var q doublespin.Question
	if err := c.do(ctx, "draw question", http.MethodPost, "/api/spin-question", req, &q); err != nil {
		return doublespin.Question{}, err
	}
	return q, nil
}

func (c *Client) GradeAnswer(ctx context.Context, req doublespin.GradeRequest) (doublespin.GradeResult, error) {
	var res doublespin.GradeResult
	if err := c.do(ctx, "grade answer", http.MethodPost, "/api/grade-answer", req, &res); err != nil {
		return doublespin.GradeResult{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindMalformed, Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		e := &Error{Kind: KindServer, Op: op, Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil {
			e.detail = errBody.Error
		}
		return e
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Err: err}
	}
	return nil
}

package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/travel-deals-service/internal/repository"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("x-goog-api-key", apiKey)
	client.SetTimeout(timeout)
	return &Client{http: client, model: model}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends prompt as a single user turn and returns the concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		body    generateResponse
		failure apiError
	)
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}}).
		SetResult(&body).
		SetError(&failure).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrGeneration, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", repository.ErrGeneration, res.StatusCode(), failure.Error.Message)
	}
	if len(body.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", repository.ErrGeneration)
	}

	var sb strings.Builder
	for _, p := range body.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", repository.ErrGeneration)
	}
	return text, nil
}

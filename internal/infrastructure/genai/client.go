package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider is the generative-text backend the chat relay forwards to.
type Provider interface {
	GenerateReply(ctx context.Context, message string) (string, error)
}

// ErrUnavailable tags transport-level failures and upstream 5xx responses,
// the classes worth a single retry. Protocol and shape errors are not tagged.
var ErrUnavailable = errors.New("gemini unavailable")

// StatusError reports a non-success upstream status. The body snippet is for
// server-side logs only and must never reach a client.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.Status, e.Body)
}

// Client calls the Gemini generateContent endpoint under a server-held key.
// The key authenticates Finverse itself; it is never exposed to browsers.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient builds a client for {baseURL}/models/{model}:generateContent.
// timeout bounds a single attempt; callers own the overall deadline.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Wire envelopes for generateContent.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateReply sends one user message and returns the first textual
// candidate of the response. The request is bound to ctx, so a disconnected
// client abandons the upstream call instead of waiting it out.
func (c *Client) GenerateReply(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: message}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: encoding request: %w", err)
	}

	url := c.baseURL + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		serr := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
		if resp.StatusCode >= http.StatusInternalServerError {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, serr)
		}
		return "", serr
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}

	for _, cand := range decoded.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", errors.New("gemini: response contained no text candidate")
}

var _ Provider = (*Client)(nil)

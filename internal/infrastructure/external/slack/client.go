// Package slack is a minimal client for the chat platform's Web API.
// Only the three calls the pipeline needs are wrapped.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

// Message is one message in a channel or thread
type Message struct {
	TS   string `json:"ts"`
	User string `json:"user"`
	Text string `json:"text"`
}

// Client wraps the chat Web API
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a chat client. An empty bot token is allowed; calls
// then return ErrNoToken so callers can skip chat actions gracefully.
func NewClient(cfg *config.SlackConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://slack.com/api"
	}
	return &Client{
		token:   cfg.BotToken,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ErrNoToken is returned when no bot token is configured
var ErrNoToken = fmt.Errorf("no bot token configured")

// Configured reports whether the client can reach the API
func (c *Client) Configured() bool {
	return c.token != ""
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	TS    string `json:"ts"`
}

// PostMessage posts text to a channel, threading under threadTS when
// given, and returns the new message's timestamp.
func (c *Client) PostMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	if !c.Configured() {
		return "", ErrNoToken
	}
	payload := map[string]string{
		"channel": channel,
		"text":    text,
	}
	if threadTS != "" {
		payload["thread_ts"] = threadTS
	}
	var res postMessageResponse
	if err := c.postJSON(ctx, "/chat.postMessage", payload, &res); err != nil {
		return "", err
	}
	if !res.OK {
		return "", fmt.Errorf("chat.postMessage failed: %s", res.Error)
	}
	return res.TS, nil
}

type lookupByEmailResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

// LookupUserIDByEmail resolves an email to a chat user id. Returns an
// empty id without error when the user is not found, so unresolvable
// participants degrade to email mentions instead of failing the job.
func (c *Client) LookupUserIDByEmail(ctx context.Context, email string) (string, error) {
	if !c.Configured() {
		return "", ErrNoToken
	}
	q := url.Values{"email": {email}}
	var res lookupByEmailResponse
	if err := c.getJSON(ctx, "/users.lookupByEmail?"+q.Encode(), &res); err != nil {
		return "", err
	}
	if !res.OK {
		if res.Error == "users_not_found" {
			return "", nil
		}
		return "", fmt.Errorf("users.lookupByEmail failed: %s", res.Error)
	}
	return res.User.ID, nil
}

type repliesResponse struct {
	OK               bool      `json:"ok"`
	Error            string    `json:"error"`
	Messages         []Message `json:"messages"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

// FetchThreadReplies returns every message in a thread, following
// cursor pagination until the API reports no next page.
func (c *Client) FetchThreadReplies(ctx context.Context, channel, threadTS string) ([]Message, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}
	var all []Message
	cursor := ""
	for {
		q := url.Values{
			"channel": {channel},
			"ts":      {threadTS},
			"limit":   {"200"},
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var res repliesResponse
		if err := c.getJSON(ctx, "/conversations.replies?"+q.Encode(), &res); err != nil {
			return nil, err
		}
		if !res.OK {
			return nil, fmt.Errorf("conversations.replies failed: %s", res.Error)
		}
		all = append(all, res.Messages...)
		cursor = res.ResponseMetadata.NextCursor
		if cursor == "" {
			return all, nil
		}
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, pathAndQuery string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("chat api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

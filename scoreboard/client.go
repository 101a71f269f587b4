package scoreboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the score service over HTTP on behalf of one player.
type Client struct {
	baseURL    string
	player     string
	httpClient *http.Client
	logger     *log.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL, player string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		player:     player,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Client) Player() string {
	return c.player
}

func (c *Client) SubmitScore(ctx context.Context, score uint32) (Receipt, error) {
	var receipt Receipt
	if err := c.do(ctx, http.MethodPost, c.scoresPath(), SubmitRequest{Score: score}, &receipt); err != nil {
		return Receipt{}, err
	}
	c.logger.Printf("score submitted: player=%s id=%s\n", c.player, receipt.ID)
	return receipt, nil
}

func (c *Client) ScoreHistory(ctx context.Context) ([]Handle, error) {
	var list HandleList
	if err := c.do(ctx, http.MethodGet, c.scoresPath(), nil, &list); err != nil {
		return nil, err
	}
	return list.Scores, nil
}

func (c *Client) Reveal(ctx context.Context, id string) (Handle, error) {
	var handle Handle
	path := c.scoresPath() + "/" + url.PathEscape(id) + "/reveal"
	if err := c.do(ctx, http.MethodPost, path, nil, &handle); err != nil {
		return Handle{}, err
	}
	return handle, nil
}

func (c *Client) scoresPath() string {
	return "/api/v1/players/" + url.PathEscape(c.player) + "/scores"
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buff := &bytes.Buffer{}
		if err := json.NewEncoder(buff).Encode(body); err != nil {
			return fmt.Errorf("cannot encode request: %w", err)
		}
		reader = buff
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set(PlayerHeader, c.player)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
			errResp.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Printf("score service returned %d for %s %s: %s\n", resp.StatusCode, method, path, errResp.Message)
		return fmt.Errorf("%w: %s (status %d)", ErrRejected, errResp.Message, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}
	return nil
}

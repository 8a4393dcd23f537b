// Package client calls the user service over HTTP. Every failure that is not a
// known business error from the service surfaces as apperr.ErrRemoteCall.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"share-platform/pkg/apperr"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Account struct {
	ID        int64  `json:"id"`
	Phone     string `json:"phone"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Bonus     int    `json:"bonus"`
}

type BonusEvent struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Value       int    `json:"value"`
	Event       string `json:"event"`
	Description string `json:"description"`
	RequestKey  string `json:"requestKey"`
}

type AdjustRequest struct {
	UserID      int64  `json:"userId"`
	Bonus       int    `json:"bonus"`
	Event       string `json:"event"`
	Description string `json:"description"`
	RequestKey  string `json:"requestKey,omitempty"`
}

type AdjustResult struct {
	Account *Account `json:"account"`
	Applied bool     `json:"applied"`
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AdjustBalance calls /user/updateBonus. Applied is false when the request key
// had already been used.
func (c *Client) AdjustBalance(ctx context.Context, req AdjustRequest) (*AdjustResult, error) {
	var result AdjustResult
	if err := c.do(ctx, http.MethodPost, "/user/updateBonus", req, &result); err != nil {
		return nil, err
	}
	if result.Account == nil {
		return nil, fmt.Errorf("updateBonus returned no account: %w", apperr.ErrRemoteCall)
	}
	return &result, nil
}

// FindBonusEvent returns the ledger event recorded under requestKey, or an
// apperr.ErrNotFound error when there is none.
func (c *Client) FindBonusEvent(ctx context.Context, requestKey string) (*BonusEvent, error) {
	var event BonusEvent
	path := "/user/bonusEvent?requestKey=" + url.QueryEscape(requestKey)
	if err := c.do(ctx, http.MethodGet, path, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperr.ErrRemoteCall)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %v: %w", err, apperr.ErrRemoteCall)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("%s %s: %s: %w", method, path, resp.Status, apperr.ErrRemoteCall)
	}

	if !env.Success {
		if kind := apperr.FromCode(env.Code); kind != nil {
			return fmt.Errorf("%s %s: %s: %w", method, path, env.Message, kind)
		}
		return fmt.Errorf("%s %s: %s %s: %w", method, path, resp.Status, env.Message, apperr.ErrRemoteCall)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s: %w", method, path, resp.Status, apperr.ErrRemoteCall)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %v: %w", err, apperr.ErrRemoteCall)
		}
	} else if out != nil {
		return fmt.Errorf("%s %s: empty data: %w", method, path, apperr.ErrRemoteCall)
	}

	return nil
}

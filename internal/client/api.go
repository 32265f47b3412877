package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tether/internal/models"
)

// Confirmation actions offered for a pending tool call.
const (
	ActionAllowOnce = "allow_once"
	ActionDeny      = "deny"

	principalTool = "Tool"
)

// ReplyRequest opens a streaming reply for the given conversation.
type ReplyRequest struct {
	Messages          []models.ConversationTurn `json:"messages"`
	SessionID         string                    `json:"session_id"`
	SessionWorkingDir string                    `json:"session_working_dir"`
}

// ExtensionConfig describes an extension to add or reconfigure on the daemon.
type ExtensionConfig struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Cmd     string   `json:"cmd,omitempty"`
	Args    []string `json:"args,omitempty"`
	URI     string   `json:"uri,omitempty"`
	EnvKeys []string `json:"env_keys,omitempty"`
}

// Providers fetches the provider registry. This is one of the two reads that
// work without the secret key.
func (c *Client) Providers(ctx context.Context) ([]models.Provider, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/agent/providers", nil, false)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var providers []models.Provider
	if err := json.Unmarshal(body, &providers); err != nil {
		return nil, fmt.Errorf("parse providers: %w", err)
	}
	return providers, nil
}

// ReadConfig fetches the daemon's config key/value map, without the secret
// key. A 401 here matches ErrUnauthorized for callers that tolerate it.
func (c *Client) ReadConfig(ctx context.Context) (map[string]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/config", nil, false)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var config map[string]string
	if err := json.Unmarshal(body, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

// UpsertConfig writes one config key. Secret-flagged values are stored by
// the daemon in its secret backend.
func (c *Client) UpsertConfig(ctx context.Context, key, value string, isSecret bool) error {
	payload := struct {
		Key      string `json:"key"`
		Value    string `json:"value"`
		IsSecret bool   `json:"is_secret"`
	}{key, value, isSecret}

	req, err := c.newRequest(ctx, http.MethodPost, "/config/upsert", payload, true)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// SetProvider selects the daemon's default provider and model.
func (c *Client) SetProvider(ctx context.Context, provider, model string) error {
	payload := struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}{provider, model}

	req, err := c.newRequest(ctx, http.MethodPost, "/agent/provider", payload, true)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// AddExtension registers or reconfigures an extension on the daemon.
func (c *Client) AddExtension(ctx context.Context, ext ExtensionConfig) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/extensions/add", ext, true)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// Confirm sends the user's allow/deny decision for a pending tool call.
func (c *Client) Confirm(ctx context.Context, id, action string) error {
	payload := struct {
		ID            string `json:"id"`
		Action        string `json:"action"`
		PrincipalType string `json:"principal_type"`
	}{id, action, principalTool}

	req, err := c.newRequest(ctx, http.MethodPost, "/confirm", payload, true)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// Reply opens a streaming reply connection and returns the event-frame body.
// The caller owns the returned reader and must close it.
func (c *Client) Reply(ctx context.Context, reply ReplyRequest) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/reply", reply, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	c.log.Debug("opening reply stream", "session", reply.SessionID)
	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := readBody(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp.Body, nil
}

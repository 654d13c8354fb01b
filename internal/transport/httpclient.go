package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type httpClient struct {
	c *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{c: &http.Client{Timeout: timeout}}
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

// Login authenticates the bot account against the server's dev-login
// endpoint and fetches its user ID, mirroring the teacher's two-step
// login (token then profile fetch) but without a session-affecting
// side channel: the robot process never persists the token to disk.
func (c *Client) Login() error {
	resp, err := c.httpC.c.Get(c.baseURL + "/auth/dev?name=" + url.QueryEscape(c.name))
	if err != nil {
		return fmt.Errorf("dev login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dev login status %d: %s", resp.StatusCode, body)
	}

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(resp.Body, &tokens); err != nil {
		return fmt.Errorf("decode tokens: %w", err)
	}
	c.token = tokens.AccessToken

	user, err := c.getJSON("/api/v1/users/me")
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if id, ok := user["id"].(string); ok {
		c.userID = id
	}
	c.log.Debug().Str("bot", c.name).Str("userId", c.userID).Msg("bot logged in")
	return nil
}

// UserID returns the bot's user ID after Login.
func (c *Client) UserID() string { return c.userID }

// Name returns the bot's display name.
func (c *Client) Name() string { return c.name }

// CreateGame creates a new Catan game lobby and returns its ID.
func (c *Client) CreateGame(name string, scenarios []string) (string, error) {
	body := map[string]any{"name": name, "scenarios": scenarios}
	resp, err := c.postJSON("/api/v1/games", body)
	if err != nil {
		return "", err
	}
	id, _ := resp["id"].(string)
	return id, nil
}

// JoinGame joins an existing game lobby.
func (c *Client) JoinGame(gameID string) error {
	_, err := c.postJSON("/api/v1/games/"+gameID+"/join", nil)
	return err
}

// StartGame starts a game (creator only).
func (c *Client) StartGame(gameID string) error {
	_, err := c.postJSON("/api/v1/games/"+gameID+"/start", nil)
	return err
}

// GetGame fetches the current lobby/game record.
func (c *Client) GetGame(gameID string) (map[string]any, error) {
	return c.getJSON("/api/v1/games/" + gameID)
}

func (c *Client) getJSON(path string) (map[string]any, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpC.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, body)
	}
	var out map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("GET %s: decode: %w", path, err)
		}
	}
	return out, nil
}

func (c *Client) post(path string, payload any) error {
	_, err := c.postJSON(path, payload)
	return err
}

func (c *Client) postJSON(path string, payload any) (map[string]any, error) {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpC.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, body)
	}
	var out map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("POST %s: decode: %w", path, err)
		}
	}
	return out, nil
}

// Package planday implements the remote collaborator interfaces against a
// Planday-style REST portal: OAuth2 refresh-token auth, employee creation,
// catalog and schema reads, and pay-rate assignment.
package planday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const requestTimeout = 30 * time.Second

// Config carries the caller-provided credentials. The refresh token comes
// from the operator's session and is never written anywhere by this package.
type Config struct {
	ClientID     string
	RefreshToken string
	TokenURL     string
	APIBaseURL   string
	// HTTPClient overrides the default client, used by tests.
	HTTPClient *http.Client
}

// Client talks to the portal. It implements session.Authenticator,
// employee.RemoteAPI, catalog.Provider and schema.Provider.
type Client struct {
	cfg   Config
	log   *logrus.Logger
	http  *http.Client
	oauth *oauth2.Config

	mu    sync.Mutex
	token *oauth2.Token
}

func NewClient(cfg Config, log *logrus.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		cfg:  cfg,
		log:  log,
		http: httpClient,
		oauth: &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{TokenURL: cfg.TokenURL},
		},
	}
}

// IsAuthenticated reports whether the client holds a token that is still
// valid. It never performs network I/O; refreshing is Reauthenticate's job.
func (c *Client) IsAuthenticated(_ context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token.Valid()
}

// Reauthenticate exchanges the stored refresh credential for a fresh access
// token. Exactly one attempt; the caller decides whether a failure is fatal.
func (c *Client) Reauthenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	ts := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: c.cfg.RefreshToken})
	token, err := ts.Token()
	if err != nil {
		return errors.Wrap(err, "refreshing access token")
	}
	c.token = token
	if c.log != nil {
		c.log.Debug("access token refreshed")
	}
	return nil
}

func (c *Client) accessToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.token.Valid() {
		return "", errors.New("planday: no valid access token; reauthenticate first")
	}
	return c.token.AccessToken, nil
}

// envelope is the portal's uniform response wrapper.
type envelope struct {
	Paging struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
		Total  int `json:"total"`
	} `json:"paging"`
	Data json.RawMessage `json:"data"`
}

// do issues one JSON request and decodes the data envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*envelope, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-ClientId", c.cfg.ClientID)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s: reading response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiMessage(raw))
	}

	env := &envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			return nil, errors.Wrapf(err, "%s %s: decoding response", method, path)
		}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, errors.Wrapf(err, "%s %s: decoding data", method, path)
		}
	}
	return env, nil
}

// apiMessage extracts the portal's error text from a failed response body,
// falling back to the raw body.
func apiMessage(raw []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if len(raw) == 0 {
		return "no response body"
	}
	return fmt.Sprintf("%.200s", raw)
}

// Package api is the Go client for the resume-forge HTTP API. It attaches
// the bearer token, refuses to send tokens it can tell are already expired,
// and purges its token on any 401 so callers can react to auth loss once
// instead of on every request.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"resume-forge/internal/services/auth"
	"resume-forge/internal/services/resumes"
)

// ErrNoToken is returned when a guarded call is attempted without a usable token.
var ErrNoToken = errors.New("no auth token")

// ErrTokenExpired is returned when the stored token's exp claim has passed.
var ErrTokenExpired = errors.New("auth token expired")

// APIError carries the status and message of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to one resume-forge server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string

	onAuthLost func()

	// now is swapped in tests to control expiry checks.
	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAuthLostHandler registers a callback invoked once whenever the stored
// token is purged, either proactively (expired exp claim) or after a 401.
func WithAuthLostHandler(fn func()) Option {
	return func(c *Client) { c.onAuthLost = fn }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the bearer token used for guarded calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently stored token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// purgeToken drops the stored token and fires the auth-lost callback.
// Returns false when there was no token to purge.
func (c *Client) purgeToken() bool {
	c.mu.Lock()
	had := c.token != ""
	c.token = ""
	c.mu.Unlock()
	if had && c.onAuthLost != nil {
		c.onAuthLost()
	}
	return had
}

// tokenExpiry decodes the exp claim from a JWT without verifying the
// signature. The server is the authority; this only avoids sending requests
// that are guaranteed to bounce.
func tokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(claims.Exp), 0), true
}

// usableToken returns the stored token, proactively purging it when expired.
func (c *Client) usableToken() (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return "", ErrNoToken
	}
	if exp, ok := tokenExpiry(token); ok && !c.now().Before(exp) {
		c.purgeToken()
		return "", ErrTokenExpired
	}
	return token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.usableToken()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.purgeToken()
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// SignUp registers a user and stores the returned token.
func (c *Client) SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.AuthResponse, error) {
	var out auth.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", req, &out, false); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	var out auth.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &out, false); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// VerifyEmail confirms the emailed code and stores the fresh token.
func (c *Client) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) (*auth.AuthResponse, error) {
	var out auth.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/verify-email", req, &out, false); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// ResendVerification requests a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	req := auth.ResendVerificationRequest{Email: email}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/resend-verification", req, nil, false)
}

// Profile fetches the caller's profile.
func (c *Client) Profile(ctx context.Context) (*auth.User, error) {
	var out auth.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// maxProfileImageBytes mirrors the server's ceiling so oversized images are
// rejected before they travel.
const maxProfileImageBytes = 5_000_000

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, req auth.UpdateProfileRequest) (*auth.User, error) {
	if req.ProfileImage != nil && len(*req.ProfileImage) > maxProfileImageBytes {
		return nil, auth.ErrImageTooLarge
	}
	var out auth.User
	if err := c.do(ctx, http.MethodPut, "/api/v1/auth/profile", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout drops the stored token. Purely client-side; tokens are stateless.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// SaveResume upserts the caller's resume.
func (c *Client) SaveResume(ctx context.Context, req resumes.SaveResumeRequest) (*resumes.SaveResumeResponse, error) {
	var out resumes.SaveResumeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/resumes/save", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListResumes fetches all of the caller's resumes.
func (c *Client) ListResumes(ctx context.Context) ([]*resumes.Resume, error) {
	var out []*resumes.Resume
	if err := c.do(ctx, http.MethodGet, "/api/v1/resumes/", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteResume removes one resume by id.
func (c *Client) DeleteResume(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/resumes/"+id, nil, nil, true)
}

// Cleanup bulk-deletes the caller's structurally empty resumes.
func (c *Client) Cleanup(ctx context.Context) (*resumes.CleanupResponse, error) {
	var out resumes.CleanupResponse
	if err := c.do(ctx, http.MethodDelete, "/api/v1/resumes/cleanup", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Inspect reports section array counts for one resume.
func (c *Client) Inspect(ctx context.Context, id string) (*resumes.InspectResponse, error) {
	var out resumes.InspectResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/resumes/"+id+"/inspect", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportOptions selects the artifact for Export.
type ExportOptions struct {
	Format       string   `json:"format"`
	Template     string   `json:"template,omitempty"`
	SectionOrder []string `json:"sectionOrder,omitempty"`
}

// Artifact is one exported document.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export renders one resume server-side and returns the artifact bytes.
func (c *Client) Export(ctx context.Context, id string, opts ExportOptions) (*Artifact, error) {
	token, err := c.usableToken()
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/resumes/"+id+"/export", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.purgeToken()
	}
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filenameFromDisposition(resp.Header.Get("Content-Disposition")),
	}, nil
}

func filenameFromDisposition(disposition string) string {
	const marker = `filename="`
	idx := strings.Index(disposition, marker)
	if idx < 0 {
		return ""
	}
	rest := disposition[idx+len(marker):]
	if end := strings.Index(rest, `"`); end >= 0 {
		return rest[:end]
	}
	return rest
}

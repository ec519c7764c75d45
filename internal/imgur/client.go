// Package imgur is a minimal client for the parts of the Imgur API the
// uploader needs: the PIN authorization flow, token refresh and image upload.
package imgur

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"screen-shooter/internal/logger"

	"github.com/dustin/go-humanize"
)

const (
	DefaultBaseURL = "https://api.imgur.com"
	ViewBaseURL    = "https://imgur.com/"
)

var ErrUnauthorized = errors.New("imgur rejected the access token")

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("imgur: HTTP %d", e.Status)
	}
	return fmt.Sprintf("imgur: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

type Tokens struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	ExpiresIn       int64  `json:"expires_in"`
	AccountUsername string `json:"account_username"`
}

type Image struct {
	ID         string `json:"id"`
	Link       string `json:"link"`
	DeleteHash string `json:"deletehash"`
}

// ViewURL is the browsable page for an uploaded image.
func ViewURL(id string) string {
	return ViewBaseURL + id
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Status  int             `json:"status"`
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
	logger       logger.Logger
}

func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      DefaultBaseURL,
		http:         &http.Client{Timeout: 60 * time.Second},
		logger:       logger.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthURL is the page where the user grants access and receives a PIN.
func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("response_type", "pin")
	return c.baseURL + "/oauth2/authorize?" + q.Encode()
}

func (c *Client) Authorize(ctx context.Context, pin string) (*Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "pin")
	form.Set("pin", pin)
	return c.token(ctx, form)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.token(ctx, form)
}

func (c *Client) token(ctx context.Context, form url.Values) (*Tokens, error) {
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange (%s): %w", form.Get("grant_type"), err)
	}

	var tokens Tokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, fmt.Errorf("token response missing tokens")
	}

	c.logger.Info("ImgurClient", "tokens issued", map[string]interface{}{
		"grant":   form.Get("grant_type"),
		"account": tokens.AccountUsername,
	})
	return &tokens, nil
}

// Upload posts the file at path. Anonymous uploads authenticate with the
// client ID; otherwise the access token is used.
func (c *Client) Upload(ctx context.Context, accessToken, path string, anon bool) (*Image, error) {
	payload, contentType, err := multipartImage(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/3/image", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if anon {
		req.Header.Set("Authorization", "Client-ID "+c.clientID)
	} else {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	var img Image
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &img); err != nil {
			return nil, fmt.Errorf("decode upload data: %w", err)
		}
	}

	c.logger.Info("ImgurClient", "upload finished", map[string]interface{}{
		"id":          img.ID,
		"size":        humanize.Bytes(uint64(len(payload))),
		"upload_time": time.Since(start),
	})
	return &img, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage pulls data.error out of an Imgur error envelope. The field is
// a string on most endpoints and an object on a few.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Data) == 0 {
		return strings.TrimSpace(string(body))
	}

	var data struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || len(data.Error) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(data.Error, &msg); err == nil {
		return msg
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data.Error, &nested); err == nil {
		return nested.Message
	}
	return string(data.Error)
}

func multipartImage(path string) ([]byte, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy upload file: %w", err)
	}
	if err := writer.WriteField("type", "file"); err != nil {
		return nil, "", fmt.Errorf("write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

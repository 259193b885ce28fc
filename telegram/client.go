package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onimusic/notifications-helper/urlencode"
	"gopkg.in/validator.v2"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 30 * time.Second
)

// HTTPDoer is the transport used for sends. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is the Bot API answer exactly as received.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx. The body is not inspected.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client builds and issues Bot API requests. It keeps no per-call state and
// is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

type ClientConfig struct {
	BaseURL    string   `validate:"nonzero"`
	HTTPClient HTTPDoer `validate:"nonnil"`
}

// DefaultClient is used by the package-level send functions.
var DefaultClient = &Client{
	baseURL:    DefaultBaseURL,
	httpClient: &http.Client{Timeout: defaultTimeout},
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
	}, nil
}

// SendMessage sends plain text. The text is URL encoded here; pass it raw.
func (c *Client) SendMessage(ctx context.Context, botToken, chatID, text string) (*Response, error) {
	return c.Send(ctx, botToken, chatID, KindText, text, "")
}

// SendPhoto sends a photo by URL or file_id. The reference is not encoded,
// the caption is.
func (c *Client) SendPhoto(ctx context.Context, botToken, chatID, photo, caption string) (*Response, error) {
	return c.Send(ctx, botToken, chatID, KindPhoto, photo, caption)
}

// SendAnimation sends a GIF or soundless video by URL or file_id.
func (c *Client) SendAnimation(ctx context.Context, botToken, chatID, animation, caption string) (*Response, error) {
	return c.Send(ctx, botToken, chatID, KindAnimation, animation, caption)
}

// SendVideo sends a video by URL or file_id.
func (c *Client) SendVideo(ctx context.Context, botToken, chatID, video, caption string) (*Response, error) {
	return c.Send(ctx, botToken, chatID, KindVideo, video, caption)
}

// SendDocument sends any file by URL or file_id.
func (c *Client) SendDocument(ctx context.Context, botToken, chatID, document, caption string) (*Response, error) {
	return c.Send(ctx, botToken, chatID, KindDocument, document, caption)
}

// Send dispatches content of the given kind. Captions are ignored for
// KindText since sendMessage has no caption parameter.
func (c *Client) Send(ctx context.Context, botToken, chatID string, kind ContentKind, content, caption string) (*Response, error) {
	requestURL, err := c.RequestURL(botToken, chatID, kind, content, caption)
	if err != nil {
		return nil, err
	}
	method := kind.Method()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// RequestURL returns the URL Send would request, without sending it.
func (c *Client) RequestURL(botToken, chatID string, kind ContentKind, content, caption string) (string, error) {
	ep, ok := kind.endpoint()
	if !ok {
		return "", &ConfigurationError{Kind: kind}
	}

	value := content
	if ep.encodeValue {
		value = urlencode.Encode(content)
	}

	requestURL := fmt.Sprintf("%s/bot%s/%s?chat_id=%s&%s=%s",
		c.baseURL, botToken, ep.method, chatID, ep.param, value)

	if caption != "" && kind != KindText {
		requestURL += "&caption=" + urlencode.Encode(caption)
	}

	return requestURL, nil
}

// SendMessage sends plain text with DefaultClient.
func SendMessage(ctx context.Context, botToken, chatID, text string) (*Response, error) {
	return DefaultClient.SendMessage(ctx, botToken, chatID, text)
}

// SendPhoto sends a photo with DefaultClient.
func SendPhoto(ctx context.Context, botToken, chatID, photo, caption string) (*Response, error) {
	return DefaultClient.SendPhoto(ctx, botToken, chatID, photo, caption)
}

// SendAnimation sends an animation with DefaultClient.
func SendAnimation(ctx context.Context, botToken, chatID, animation, caption string) (*Response, error) {
	return DefaultClient.SendAnimation(ctx, botToken, chatID, animation, caption)
}

// SendVideo sends a video with DefaultClient.
func SendVideo(ctx context.Context, botToken, chatID, video, caption string) (*Response, error) {
	return DefaultClient.SendVideo(ctx, botToken, chatID, video, caption)
}

// SendDocument sends a document with DefaultClient.
func SendDocument(ctx context.Context, botToken, chatID, document, caption string) (*Response, error) {
	return DefaultClient.SendDocument(ctx, botToken, chatID, document, caption)
}

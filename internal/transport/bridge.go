package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
)

// Bridge talks to the whatsapp-web.js sidecar over HTTP.
type Bridge struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewBridge creates a client for the sidecar at baseURL.
func NewBridge(baseURL string) *Bridge {
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	return &Bridge{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request against the sidecar and decodes
// the JSON response into out. An unreachable sidecar and a 503 both
// map to ErrNotConnected: in either case there is no usable session.
func (b *Bridge) doRequest(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return ErrNotConnected
	}
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &errResp)
		return &statusError{code: resp.StatusCode, message: errResp.Error}
	}

	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// Status reports the sidecar's session state.
func (b *Bridge) Status(ctx context.Context) (models.ConnectionStatus, error) {
	var status models.ConnectionStatus
	err := b.doRequest(ctx, http.MethodGet, "/status", &status)
	return status, err
}

// QRCode returns the pairing QR code as a data URL, or an empty string
// when no pairing is pending.
func (b *Bridge) QRCode(ctx context.Context) (string, error) {
	var resp struct {
		QRCode string `json:"qrCode"`
	}
	if err := b.doRequest(ctx, http.MethodGet, "/qr", &resp); err != nil {
		return "", err
	}
	return resp.QRCode, nil
}

// ListChats returns every chat the session knows about.
func (b *Bridge) ListChats(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat
	if err := b.doRequest(ctx, http.MethodGet, "/chats", &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// FetchMessages returns up to limit recent messages from a chat,
// newest last.
func (b *Bridge) FetchMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	path := "/chats/" + url.PathEscape(chatID) + "/messages?" + q.Encode()

	var messages []models.Message
	if err := b.doRequest(ctx, http.MethodGet, path, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ResolveQuoted returns the message msg quotes, or nil when the sidecar
// no longer has it.
func (b *Bridge) ResolveQuoted(ctx context.Context, msg models.Message) (*models.Message, error) {
	var quoted models.Message
	err := b.doRequest(ctx, http.MethodGet, "/messages/"+url.PathEscape(msg.ID)+"/quoted", &quoted)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &quoted, nil
}

// ResolveSender returns the display identity behind a message.
func (b *Bridge) ResolveSender(ctx context.Context, msg models.Message) (models.Sender, error) {
	var sender models.Sender
	err := b.doRequest(ctx, http.MethodGet, "/messages/"+url.PathEscape(msg.ID)+"/sender", &sender)
	return sender, err
}

// ResolveMedia returns an opaque reference to the message's attachment.
func (b *Bridge) ResolveMedia(ctx context.Context, msg models.Message) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := b.doRequest(ctx, http.MethodGet, "/messages/"+url.PathEscape(msg.ID)+"/media", &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Disconnect tears down the sidecar session. Group activation state
// lives in this process and survives a disconnect.
func (b *Bridge) Disconnect(ctx context.Context) error {
	return b.doRequest(ctx, http.MethodPost, "/disconnect", nil)
}

// statusError is a non-503 error response from the sidecar.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("bridge error %d: %s", e.code, e.message)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

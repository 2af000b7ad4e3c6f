// Package transport abstracts the WhatsApp session used by the scanner.
//
// The concrete implementation is Bridge, an HTTP client for the
// whatsapp-web.js sidecar that owns the browser session, QR pairing and
// reconnect handling. Live messages are not pulled through this
// interface: the sidecar pushes them to the server's webhook endpoint.
package transport

import (
	"context"
	"errors"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
)

// ErrNotConnected is returned when an operation needs a live WhatsApp
// session and there is none. Callers must surface it instead of
// degrading to empty results.
var ErrNotConnected = errors.New("whatsapp not connected")

// Transport supplies chat metadata, historical messages, and lookups
// for quoted messages, senders and media.
type Transport interface {
	Status(ctx context.Context) (models.ConnectionStatus, error)
	QRCode(ctx context.Context) (string, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	FetchMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error)
	// ResolveQuoted returns the message a reply quotes, or nil if the
	// quoted message cannot be found.
	ResolveQuoted(ctx context.Context, msg models.Message) (*models.Message, error)
	ResolveSender(ctx context.Context, msg models.Message) (models.Sender, error)
	// ResolveMedia returns an opaque reference (URL or data URI) for the
	// message's attachment.
	ResolveMedia(ctx context.Context, msg models.Message) (string, error)
	Disconnect(ctx context.Context) error
}

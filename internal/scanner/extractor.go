package scanner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

// Sentinels for fields the heuristics could not recover.
const (
	PriceOnRequest  = "Price on request"
	UnknownLocation = "Unknown"
	UnknownSeller   = "Unknown"
	fallbackTitle   = "FPV Item"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 300
)

// pricePatterns are tried in order; the first whole match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\$£€]\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),      // $1,234.56
	regexp.MustCompile(`(\d+)\s*[\$£€]`),                             // 1234$
	regexp.MustCompile(`(?i)price[:\s]*(\d+)`),                       // Price: 1234
	regexp.MustCompile(`(?i)(\d+)\s*(?:rand|zar|usd|gbp|eur)`),       // 1234 rand
	regexp.MustCompile(`(?i)r\s*(\d+)`),                              // R 1234
	regexp.MustCompile(`(?i)r(\d+)`),                                 // R3000
	regexp.MustCompile(`(?i)(\d+)\s*(?:excluding|including|shipping)`), // 3000 excluding shipping
}

// titlePatterns are tried in order; the first capture longer than five
// characters wins, otherwise the first message line is used.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:selling|for sale|fs:?)\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)(.+?)\s*(?:for sale|selling|fs:?)`),
	regexp.MustCompile(`(?i)(?:drone|quad|goggles|controller|transmitter|receiver|motor|esc|battery|camera|vtx|antenna)[^.]*\.`),
	regexp.MustCompile(`(?i)^([^•\n]+?)(?:\s*•|$)`),
	regexp.MustCompile(`(?i)(?:selling|for sale)\s*•\s*(.+?)(?:\s*•|\n|$)`),
	regexp.MustCompile(`(?i)^([^•\n]+?)(?:\s*[-–]\s*|$)`),
	regexp.MustCompile(`(?i)(?:brand new|new)\s*(.+?)(?:\s*[-–]|\n|$)`),
}

// locationPatterns mix capture-group patterns (explicit "location:"
// style prefixes) with bare place-name matches. A matched capture is
// preferred, otherwise the whole match is used, so the value shape is
// best-effort text rather than a clean place name.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:location|area|pickup|collection):\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)(?:jhb|joburg|pretoria|ct|cape town|durban|bloem|bloemfontein|pe|port elizabeth)`),
	regexp.MustCompile(`(?i)(?:based in|located in|pickup from)\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)(?:southern suburbs|cape town|johannesburg|pretoria|durban|bloemfontein|port elizabeth)`),
	regexp.MustCompile(`(?i)(?:cpt|jhb|pta|dbn|bloem|pe)\b`),
}

// Extractor builds listing candidates from messages the classifier
// accepted. Field extraction is best-effort: price, title, location and
// seller fall back to sentinels. Only a failed sender lookup skips the
// message, and that failure is reported rather than swallowed.
type Extractor struct {
	transport transport.Transport
	log       zerolog.Logger
}

// NewExtractor creates an extractor that resolves sender and media
// details through the given transport.
func NewExtractor(t transport.Transport, log zerolog.Logger) *Extractor {
	return &Extractor{transport: t, log: log}
}

// Extract produces a listing from a message.
func (e *Extractor) Extract(ctx context.Context, msg models.Message) (*models.Listing, error) {
	sender, err := e.transport.ResolveSender(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("resolve sender for message %s: %w", msg.ID, err)
	}
	seller := sender.DisplayName
	if seller == "" {
		seller = sender.Handle
	}
	if seller == "" {
		seller = UnknownSeller
	}

	// Media resolution failure must not fail the whole extraction; the
	// listing is simply recorded without an image.
	var image string
	if msg.HasMedia {
		ref, err := e.transport.ResolveMedia(ctx, msg)
		if err != nil {
			e.log.Warn().Err(err).Str("message_id", msg.ID).Msg("failed to resolve media")
		} else {
			image = ref
		}
	}

	return &models.Listing{
		ID:          msg.ID,
		Title:       extractTitle(msg.Body),
		Price:       extractPrice(msg.Body),
		Description: extractDescription(msg.Body),
		Image:       image,
		Seller:      seller,
		Location:    extractLocation(msg.Body),
		TimePosted:  msg.Sent(),
		Category:    Categorize(msg.Body),
		GroupID:     msg.ChatID,
		MessageID:   msg.ID,
	}, nil
}

func extractPrice(body string) string {
	for _, re := range pricePatterns {
		if match := re.FindString(body); match != "" {
			return match
		}
	}
	return PriceOnRequest
}

func extractTitle(body string) string {
	for _, re := range titlePatterns {
		match := re.FindStringSubmatch(body)
		if len(match) > 1 && len(match[1]) > 5 {
			return truncate(strings.TrimSpace(match[1]), maxTitleLen)
		}
	}
	line := body
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		line = body[:i]
	}
	line = truncate(line, maxTitleLen)
	if line == "" {
		return fallbackTitle
	}
	return line
}

func extractDescription(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		if desc := truncate(body[i+1:], maxDescriptionLen); desc != "" {
			return desc
		}
	}
	return truncate(body, maxDescriptionLen)
}

func extractLocation(body string) string {
	for _, re := range locationPatterns {
		match := re.FindStringSubmatch(body)
		if match == nil {
			continue
		}
		if len(match) > 1 && match[1] != "" {
			return match[1]
		}
		return match[0]
	}
	return UnknownLocation
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

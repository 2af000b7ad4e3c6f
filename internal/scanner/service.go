// Package scanner is the item-detection, extraction, classification and
// lifecycle engine. It decides which group messages are for-sale
// listings, extracts structured fields from their free text, tracks the
// sold transition, and serves a cached 14-day historical scan.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/metrics"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

// Options tune the scan and lifecycle behavior. Zero values fall back
// to production defaults.
type Options struct {
	Window        time.Duration // historical lookback, default 14 days
	ItemCap       int           // global cap on items per scan, default 1000
	FetchLimit    int           // messages fetched per group per scan, default 1000
	CacheTTL      time.Duration // windowed-scan cache validity, default 5 minutes
	SoldRetention time.Duration // sold listings linger this long, default 24 hours
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = 14 * 24 * time.Hour
	}
	if o.ItemCap <= 0 {
		o.ItemCap = 1000
	}
	if o.FetchLimit <= 0 {
		o.FetchLimit = 1000
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
	if o.SoldRetention <= 0 {
		o.SoldRetention = 24 * time.Hour
	}
	return o
}

// ScanSummary reports what a forced resync did.
type ScanSummary struct {
	MessagesScanned int `json:"messagesScanned"`
	ItemsDetected   int `json:"itemsDetected"`
	ItemsMarkedSold int `json:"itemsMarkedSold"`
}

// scanResult is the single windowed-scan cache slot. It is replaced
// wholesale when a scan completes; readers never see a partial scan.
type scanResult struct {
	items      []models.Listing
	capturedAt time.Time
}

// Service wires the classifier, extractor, store and activation
// registry together and owns the windowed-scan cache.
type Service struct {
	log       zerolog.Logger
	transport transport.Transport
	registry  *Registry
	store     *Store
	extractor *Extractor
	opts      Options

	cacheMu sync.Mutex
	cache   *scanResult

	// scanMu serializes full historical scans. Live ingestion never
	// takes it, so a long scan cannot starve the message path.
	scanMu sync.Mutex
}

// NewService creates the scanning service on top of a transport.
func NewService(t transport.Transport, opts Options, log zerolog.Logger) *Service {
	opts = opts.withDefaults()
	return &Service{
		log:       log,
		transport: t,
		registry:  NewRegistry(),
		store:     NewStore(opts.SoldRetention),
		extractor: NewExtractor(t, log),
		opts:      opts,
	}
}

// SetGroupActive updates the activation registry. It works regardless
// of transport state.
func (s *Service) SetGroupActive(groupID string, active bool) {
	s.registry.SetActive(groupID, active)
	s.log.Info().Str("group_id", groupID).Bool("active", active).Msg("group activation updated")
}

// IsGroupActive reports whether a group is opted into scanning.
func (s *Service) IsGroupActive(groupID string) bool {
	return s.registry.IsActive(groupID)
}

// ActiveListings returns all tracked listings not yet sold.
func (s *Service) ActiveListings() []models.Listing {
	return s.store.Active()
}

// SoldListings returns tracked listings marked sold and not yet expired.
func (s *Service) SoldListings() []models.Listing {
	return s.store.Sold()
}

// HandleIncomingMessage runs one live message through the detection
// pipeline. Messages outside group chats or from inactive groups are
// dropped before classification. Extraction failures skip the message;
// they never abort the ingestion stream.
func (s *Service) HandleIncomingMessage(ctx context.Context, msg models.Message) {
	if !msg.FromGroup() || !s.registry.IsActive(msg.ChatID) {
		return
	}
	metrics.MessagesProcessed.Inc()

	if IsForSale(msg.Body) {
		listing, err := s.extractor.Extract(ctx, msg)
		if err != nil {
			metrics.ExtractionFailures.Inc()
			s.log.Error().Err(err).Str("message_id", msg.ID).Msg("failed to extract listing")
		} else {
			s.store.Upsert(*listing)
			metrics.ItemsDetected.WithLabelValues(string(listing.Category)).Inc()
			s.log.Info().
				Str("title", listing.Title).
				Str("category", string(listing.Category)).
				Str("group_id", listing.GroupID).
				Msg("listing detected")
		}
	}

	s.applySoldReply(ctx, msg)
}

// applySoldReply flips a tracked listing to sold when a reply quoting
// its message contains the word "sold".
func (s *Service) applySoldReply(ctx context.Context, msg models.Message) {
	if !msg.HasQuoted || !strings.Contains(strings.ToLower(msg.Body), "sold") {
		return
	}
	quoted, err := s.transport.ResolveQuoted(ctx, msg)
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", msg.ID).Msg("failed to resolve quoted message")
		return
	}
	if quoted == nil {
		return
	}
	if s.store.MarkSold(quoted.ID) {
		metrics.ItemsMarkedSold.Inc()
		s.log.Info().Str("listing_id", quoted.ID).Msg("listing marked sold")
	}
}

// WindowedListings returns listings detected across active groups
// within the lookback window, served from the cache while it is fresh.
func (s *Service) WindowedListings(ctx context.Context) ([]models.Listing, error) {
	if items, ok := s.cachedItems(); ok {
		metrics.ScanCacheHits.Inc()
		return items, nil
	}
	metrics.ScanCacheMisses.Inc()
	items, _, err := s.runScan(ctx)
	return items, err
}

// ForceResync invalidates the cache, runs a fresh scan and reports
// summary counters.
func (s *Service) ForceResync(ctx context.Context) (ScanSummary, error) {
	s.cacheMu.Lock()
	s.cache = nil
	s.cacheMu.Unlock()

	_, summary, err := s.runScan(ctx)
	return summary, err
}

// cachedItems returns a copy of the cache slot when it is still valid.
func (s *Service) cachedItems() ([]models.Listing, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cache == nil || time.Since(s.cache.capturedAt) >= s.opts.CacheTTL {
		return nil, false
	}
	items := make([]models.Listing, len(s.cache.items))
	copy(items, s.cache.items)
	return items, true
}

// runScan walks every active group's recent history through the
// classifier and extractor, then publishes the accumulated result as
// the new cache entry in a single replacement.
//
// Failure to list chats at all is a hard failure. Failure to scan one
// group is logged and skipped: the scan completes with reduced
// coverage instead of aborting.
func (s *Service) runScan(ctx context.Context) ([]models.Listing, ScanSummary, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	// A scan that completed while we waited for the lock is fresh
	// enough; do not hit the transport again.
	if items, ok := s.cachedItems(); ok {
		return items, ScanSummary{
			ItemsDetected:   len(items),
			ItemsMarkedSold: len(s.store.Sold()),
		}, nil
	}

	start := time.Now()
	chats, err := s.transport.ListChats(ctx)
	if err != nil {
		return nil, ScanSummary{}, fmt.Errorf("list chats: %w", err)
	}

	cutoff := time.Now().Add(-s.opts.Window)
	var (
		items   []models.Listing
		scanned int
		groups  int
	)

scanLoop:
	for _, chat := range chats {
		if !chat.IsGroup || !s.registry.IsActive(chat.ID) {
			continue
		}
		groups++

		messages, err := s.transport.FetchMessages(ctx, chat.ID, s.opts.FetchLimit)
		if err != nil {
			s.log.Warn().Err(err).Str("chat_id", chat.ID).Str("chat", chat.Name).Msg("failed to scan group, skipping")
			continue
		}

		for _, msg := range messages {
			if len(items) >= s.opts.ItemCap {
				s.log.Info().Int("cap", s.opts.ItemCap).Msg("reached scan item cap, stopping early")
				break scanLoop
			}
			if msg.Sent().Before(cutoff) {
				continue
			}
			scanned++
			if !IsForSale(msg.Body) {
				continue
			}
			listing, err := s.extractor.Extract(ctx, msg)
			if err != nil {
				metrics.ExtractionFailures.Inc()
				s.log.Error().Err(err).Str("message_id", msg.ID).Msg("failed to extract listing during scan")
				continue
			}
			// Historical detections feed the lifecycle store too, so a
			// listing marked sold via live ingestion keeps its flag here.
			s.store.Upsert(*listing)
			if stored, ok := s.store.Get(listing.ID); ok {
				items = append(items, stored)
			}
		}
	}

	took := time.Since(start)
	metrics.ScansTotal.Inc()
	metrics.ScanDuration.Observe(took.Seconds())
	s.log.Info().
		Int("groups", groups).
		Int("messages_scanned", scanned).
		Int("items", len(items)).
		Dur("took", took).
		Msg("windowed scan complete")

	s.cacheMu.Lock()
	s.cache = &scanResult{items: items, capturedAt: time.Now()}
	s.cacheMu.Unlock()

	out := make([]models.Listing, len(items))
	copy(out, items)
	return out, ScanSummary{
		MessagesScanned: scanned,
		ItemsDetected:   len(items),
		ItemsMarkedSold: len(s.store.Sold()),
	}, nil
}

// Groups joins transport chat metadata with activation state and
// per-group listing counts. Requires a connected transport.
func (s *Service) Groups(ctx context.Context) ([]models.Group, error) {
	chats, err := s.transport.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	counts := s.store.CountByGroup()
	groups := make([]models.Group, 0, len(chats))
	for _, chat := range chats {
		if !chat.IsGroup {
			continue
		}
		lastActivity := "Unknown"
		if chat.LastMessageAt > 0 {
			lastActivity = time.Unix(chat.LastMessageAt, 0).UTC().Format(time.RFC3339)
		}
		groups = append(groups, models.Group{
			ID:           chat.ID,
			Name:         chat.Name,
			MemberCount:  chat.ParticipantCount,
			IsActive:     s.registry.IsActive(chat.ID),
			LastActivity: lastActivity,
			Description:  chat.Description,
			ItemsFound:   counts[chat.ID],
		})
	}
	return groups, nil
}

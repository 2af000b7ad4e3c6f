package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/api"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/scanner"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

// stubTransport is a minimal Transport for handler tests.
type stubTransport struct {
	connected bool
	qr        string
	chats     []models.Chat
	messages  map[string][]models.Message
}

func (s *stubTransport) Status(ctx context.Context) (models.ConnectionStatus, error) {
	if !s.connected {
		return models.ConnectionStatus{}, transport.ErrNotConnected
	}
	return models.ConnectionStatus{IsConnected: true, PhoneNumber: "+27 82 000 0001"}, nil
}

func (s *stubTransport) QRCode(ctx context.Context) (string, error) {
	return s.qr, nil
}

func (s *stubTransport) ListChats(ctx context.Context) ([]models.Chat, error) {
	if !s.connected {
		return nil, transport.ErrNotConnected
	}
	return s.chats, nil
}

func (s *stubTransport) FetchMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	if !s.connected {
		return nil, transport.ErrNotConnected
	}
	return s.messages[chatID], nil
}

func (s *stubTransport) ResolveQuoted(ctx context.Context, msg models.Message) (*models.Message, error) {
	return nil, nil
}

func (s *stubTransport) ResolveSender(ctx context.Context, msg models.Message) (models.Sender, error) {
	return models.Sender{DisplayName: "Test Seller"}, nil
}

func (s *stubTransport) ResolveMedia(ctx context.Context, msg models.Message) (string, error) {
	return "", nil
}

func (s *stubTransport) Disconnect(ctx context.Context) error {
	s.connected = false
	return nil
}

func newTestRouter(st *stubTransport) http.Handler {
	svc := scanner.NewService(st, scanner.Options{}, zerolog.Nop())
	return api.NewRouter(zerolog.Nop(), svc, st)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWebhookCreatesListing(t *testing.T) {
	st := &stubTransport{connected: true}
	router := newTestRouter(st)

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/groups/fpv@g.us", `{"isActive":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := fmt.Sprintf(`{
		"id": "m1",
		"chatId": "fpv@g.us",
		"from": "27820000001@c.us",
		"body": "Selling DJI FPV drone, brand new, $450, based in Austin",
		"timestamp": %d
	}`, time.Now().Unix())
	rec = doJSON(t, router, http.MethodPost, "/api/whatsapp/webhook", payload)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/whatsapp/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, models.CategoryCompleteSetup, items[0].Category)
	assert.Contains(t, items[0].Price, "$450")
}

func TestWebhookRejectsBadBody(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: true})

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/webhook", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/whatsapp/webhook", `{"body":"missing ids"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateGroupWorksWhileDisconnected(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: false})

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/groups/fpv@g.us", `{"isActive":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool   `json:"success"`
		GroupID  string `json:"groupId"`
		IsActive bool   `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "fpv@g.us", resp.GroupID)
	assert.True(t, resp.IsActive)
}

func TestStatusNotConnected(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: false})

	rec := doJSON(t, router, http.MethodGet, "/api/whatsapp/status", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "whatsapp not connected", resp["error"])
}

func TestQRCodeNotAvailable(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: true})

	rec := doJSON(t, router, http.MethodGet, "/api/whatsapp/qr", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQRCode(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: true, qr: "data:image/png;base64,abc"})

	rec := doJSON(t, router, http.MethodGet, "/api/whatsapp/qr", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "data:image/png;base64,abc", resp["qrCode"])
}

func TestListGroupsNotConnected(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: false})

	rec := doJSON(t, router, http.MethodGet, "/api/whatsapp/groups", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecentItemsScansActiveGroups(t *testing.T) {
	st := &stubTransport{
		connected: true,
		chats:     []models.Chat{{ID: "fpv@g.us", Name: "FPV Market", IsGroup: true}},
		messages: map[string][]models.Message{
			"fpv@g.us": {
				{ID: "m1", ChatID: "fpv@g.us", Body: "Selling drone $450", Timestamp: time.Now().Unix()},
				{ID: "m2", ChatID: "fpv@g.us", Body: "hello everyone", Timestamp: time.Now().Unix()},
			},
		},
	}
	router := newTestRouter(st)

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/groups/fpv@g.us", `{"isActive":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/whatsapp/items/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestSyncReturnsSummary(t *testing.T) {
	st := &stubTransport{
		connected: true,
		chats:     []models.Chat{{ID: "fpv@g.us", Name: "FPV Market", IsGroup: true}},
		messages: map[string][]models.Message{
			"fpv@g.us": {
				{ID: "m1", ChatID: "fpv@g.us", Body: "Selling drone $450", Timestamp: time.Now().Unix()},
			},
		},
	}
	router := newTestRouter(st)

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/groups/fpv@g.us", `{"isActive":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/whatsapp/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string              `json:"message"`
		Stats   scanner.ScanSummary `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sync completed", resp.Message)
	assert.Equal(t, 1, resp.Stats.MessagesScanned)
	assert.Equal(t, 1, resp.Stats.ItemsDetected)
}

func TestSyncNotConnected(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: false})

	rec := doJSON(t, router, http.MethodPost, "/api/whatsapp/sync", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthDegradedWhenDisconnected(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: false})

	rec := doJSON(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "fail", resp.Checks["bridge"].Status)
}

func TestHealthHealthy(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: true})

	rec := doJSON(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestSoldItemsEmptyByDefault(t *testing.T) {
	router := newTestRouter(&stubTransport{connected: true})

	rec := doJSON(t, router, http.MethodGet, "/api/whatsapp/items/sold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

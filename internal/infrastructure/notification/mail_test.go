package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewOrderItem(uuid.Nil, uuid.New(), nil, "Brusilica", "125mm",
		decimal.NewFromInt(900), decimal.NewFromInt(1500), 2, false)
	require.NoError(t, err)

	o, err := order.NewOrder(shared.ScopeAlati, "Petar Petrovic", "0641234567", *item)
	require.NoError(t, err)
	o.Note = "zove popodne"
	return o
}

func TestMailNotifier_OrderCreated(t *testing.T) {
	var captured mailRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	notifier := NewMailNotifier(&config.MailConfig{
		Endpoint:  server.URL,
		APIKey:    "test-key",
		From:      "backoffice@alati.rs",
		Recipient: "gazda@alati.rs",
		Timeout:   time.Second,
	})
	require.NotNil(t, notifier)

	err := notifier.OrderCreated(context.Background(), testOrder(t))
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "backoffice@alati.rs", captured.From)
	assert.Equal(t, "gazda@alati.rs", captured.To)
	assert.Equal(t, "Nova porudzbina: Petar Petrovic", captured.Subject)
	assert.Contains(t, captured.Text, "Kupac: Petar Petrovic (0641234567)")
	assert.Contains(t, captured.Text, "2x Brusilica 125mm po 1500")
	assert.Contains(t, captured.Text, "Ukupno: 3000")
	assert.Contains(t, captured.Text, "Napomena: zove popodne")
}

func TestMailNotifier_OrderCreatedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewMailNotifier(&config.MailConfig{
		Endpoint:  server.URL,
		Recipient: "gazda@alati.rs",
	})

	err := notifier.OrderCreated(context.Background(), testOrder(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestMailNotifier_OrderCreatedRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "invalid recipient"}`))
	}))
	defer server.Close()

	notifier := NewMailNotifier(&config.MailConfig{Endpoint: server.URL})

	err := notifier.OrderCreated(context.Background(), testOrder(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestMailNotifier_DisabledWithoutEndpoint(t *testing.T) {
	assert.Nil(t, NewMailNotifier(nil))
	assert.Nil(t, NewMailNotifier(&config.MailConfig{}))
}

func TestMailNotifier_NoAuthHeaderWithoutKey(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	notifier := NewMailNotifier(&config.MailConfig{Endpoint: server.URL})
	require.NoError(t, notifier.OrderCreated(context.Background(), testOrder(t)))
	assert.Empty(t, authHeader)
}

func TestFormatOrderSummary_PickupAddress(t *testing.T) {
	o := testOrder(t)
	require.NoError(t, o.SetCustomer("Petar Petrovic", "0641234567", "Bulevar 1, Novi Sad", false))
	assert.Contains(t, formatOrderSummary(o), "Adresa: Bulevar 1, Novi Sad")

	require.NoError(t, o.SetCustomer("Petar Petrovic", "0641234567", "Bulevar 1, Novi Sad", true))
	summary := formatOrderSummary(o)
	assert.Contains(t, summary, "Preuzimanje: licno")
	assert.False(t, strings.Contains(summary, "Adresa:"))
}

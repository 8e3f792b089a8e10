package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// MailNotifier posts an order-created summary to an external mail API.
// Delivery is best effort; callers log failures and move on.
type MailNotifier struct {
	endpoint   string
	apiKey     string
	from       string
	recipient  string
	httpClient *http.Client
}

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type mailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewMailNotifier builds a notifier from the mail configuration. Returns nil
// when no endpoint is configured, which disables notifications.
func NewMailNotifier(cfg *config.MailConfig) *MailNotifier {
	if cfg == nil || cfg.Endpoint == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MailNotifier{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		from:      cfg.From,
		recipient: cfg.Recipient,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// OrderCreated sends the creation summary for a freshly saved order
func (n *MailNotifier) OrderCreated(ctx context.Context, o *order.Order) error {
	payload := mailRequest{
		From:    n.from,
		To:      n.recipient,
		Subject: fmt.Sprintf("Nova porudzbina: %s", o.CustomerName),
		Text:    formatOrderSummary(o),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mail response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response mailResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse mail response: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("mail API rejected message: %s", response.Message)
	}

	return nil
}

// formatOrderSummary renders a plain-text order summary in the wording the
// back office operators use day to day.
func formatOrderSummary(o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Kupac: %s", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Fprintf(&b, " (%s)", o.CustomerPhone)
	}
	b.WriteString("\n")

	if o.Pickup {
		b.WriteString("Preuzimanje: licno\n")
	} else if o.Address != "" {
		fmt.Fprintf(&b, "Adresa: %s\n", o.Address)
	}

	b.WriteString("\nStavke:\n")
	for _, item := range o.Items {
		title := item.Title
		if item.VariantLabel != "" {
			title = title + " " + item.VariantLabel
		}
		fmt.Fprintf(&b, "- %dx %s po %s\n", item.Kolicina, title, item.ProdajnaCena.String())
	}

	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.SaleTotal())
	}
	fmt.Fprintf(&b, "\nUkupno: %s\n", total.String())

	if o.Note != "" {
		fmt.Fprintf(&b, "Napomena: %s\n", o.Note)
	}

	return b.String()
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"canteen/internal/config"

	"github.com/rs/zerolog"
)

// smsNotifier sends OTPs through a DLT-template SMS gateway over HTTP GET.
type smsNotifier struct {
	client  *http.Client
	cfg     config.NotifierConfig
	logger  zerolog.Logger
	timeout time.Duration
}

// gatewayResponse is the body returned by the gateway.
type gatewayResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
}

// NewSMSNotifier creates a Notifier backed by the configured SMS gateway.
func NewSMSNotifier(cfg config.NotifierConfig, logger zerolog.Logger) Notifier {
	return NewSMSNotifierWithClient(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
}

// NewSMSNotifierWithClient creates an SMS Notifier using client.
func NewSMSNotifierWithClient(client *http.Client, cfg config.NotifierConfig, logger zerolog.Logger) Notifier {
	return &smsNotifier{
		client:  client,
		cfg:     cfg,
		timeout: cfg.Timeout,
		logger:  logger.With().Str("component", "sms-notifier").Logger(),
	}
}

func (n *smsNotifier) Send(ctx context.Context, contact, employeeName, otp string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrNoContact
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("authorization", n.cfg.APIKey)
	params.Set("sender_id", n.cfg.SenderID)
	params.Set("message", n.cfg.TemplateID)
	params.Set("variables_values", employeeName+"|"+otp)
	params.Set("route", n.cfg.Route)
	params.Set("numbers", contact)

	endpoint := n.cfg.URL
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + params.Encode()
	} else {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("contact", maskContact(contact)).Msg("sms gateway unreachable")
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("failed to read sms gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn().
			Int("status", resp.StatusCode).
			Str("contact", maskContact(contact)).
			Msg("sms gateway rejected request")
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var result gatewayResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if !result.Return {
		return fmt.Errorf("sms gateway refused message: %s", string(result.Message))
	}

	n.logger.Info().Str("contact", maskContact(contact)).Msg("otp sent")
	return nil
}

// Package twilio implements the SMS provider adapter for Twilio's
// Programmable Messaging API.
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deliverlylabs/deliverly/internal/config"
	"github.com/deliverlylabs/deliverly/internal/sms/domain"
)

const defaultBaseURL = "https://api.twilio.com"

type Adapter struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func New(cfg config.SMSConfig) *Adapter {
	return &Adapter{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.TwilioFrom,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: 12 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the adapter at a local server.
func NewWithBaseURL(cfg config.SMSConfig, baseURL string) *Adapter {
	adapter := New(cfg)
	adapter.baseURL = strings.TrimRight(baseURL, "/")
	return adapter
}

func (a *Adapter) Name() string { return "twilio" }

func (a *Adapter) Send(ctx context.Context, message domain.Message) error {
	form := url.Values{}
	form.Set("To", message.To)
	form.Set("From", a.from)
	form.Set("Body", message.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", a.baseURL, a.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(a.accountSID, a.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.ProviderError{
			Provider:   a.Name(),
			StatusCode: resp.StatusCode,
			Payload:    strings.TrimSpace(string(payload)),
		}
	}
	return nil
}

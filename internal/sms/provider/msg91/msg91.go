// Package msg91 implements the SMS provider adapter for the MSG91 v5
// flow API.
package msg91

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deliverlylabs/deliverly/internal/config"
	"github.com/deliverlylabs/deliverly/internal/sms/domain"
)

const defaultBaseURL = "https://control.msg91.com"

type Adapter struct {
	authKey  string
	senderID string
	baseURL  string
	client   *http.Client
}

func New(cfg config.SMSConfig) *Adapter {
	return &Adapter{
		authKey:  cfg.MSG91AuthKey,
		senderID: cfg.MSG91SenderID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 12 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the adapter at a local server.
func NewWithBaseURL(cfg config.SMSConfig, baseURL string) *Adapter {
	adapter := New(cfg)
	adapter.baseURL = strings.TrimRight(baseURL, "/")
	return adapter
}

func (a *Adapter) Name() string { return "msg91" }

func (a *Adapter) Send(ctx context.Context, message domain.Message) error {
	body := map[string]any{
		"sender": a.senderID,
		"route":  "4",
		"sms": []map[string]any{
			{
				"message": message.Body,
				"to":      []string{message.To},
			},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/v5/flow/", bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authkey", a.authKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("msg91 request: %w", err)
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

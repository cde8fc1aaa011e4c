package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deliverlylabs/deliverly/internal/config"
	"github.com/deliverlylabs/deliverly/internal/sms/domain"
	"github.com/deliverlylabs/deliverly/internal/sms/provider/msg91"
	"github.com/deliverlylabs/deliverly/internal/sms/provider/twilio"
)

func twilioConfig() config.SMSConfig {
	return config.SMSConfig{
		Provider:         "twilio",
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "secret",
		TwilioFrom:       "+10000000000",
	}
}

func TestNewProviderSelection(t *testing.T) {
	provider, err := NewProvider(config.Config{SMS: config.SMSConfig{Provider: "twilio"}})
	require.NoError(t, err)
	require.Equal(t, "twilio", provider.Name())

	provider, err = NewProvider(config.Config{SMS: config.SMSConfig{Provider: "MSG91"}})
	require.NoError(t, err)
	require.Equal(t, "msg91", provider.Name())

	_, err = NewProvider(config.Config{SMS: config.SMSConfig{Provider: "carrier-pigeon"}})
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestSendValidatesMessage(t *testing.T) {
	svc := &Service{log: zap.NewNop(), provider: twilio.New(twilioConfig())}

	err := svc.Send(context.Background(), domain.Message{To: "", Body: "hi"})
	require.ErrorIs(t, err, domain.ErrInvalidRecipient)

	err = svc.Send(context.Background(), domain.Message{To: "+911234567890", Body: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidBody)
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "AC123", user)
		require.Equal(t, "secret", pass)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := twilio.NewWithBaseURL(twilioConfig(), server.URL)
	svc := &Service{log: zap.NewNop(), provider: adapter}

	err := svc.Send(context.Background(), domain.Message{To: "+911234567890", Body: "delivery update"})
	require.NoError(t, err)
	require.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	require.Equal(t, "+911234567890", gotTo)
	require.Equal(t, "+10000000000", gotFrom)
	require.Equal(t, "delivery update", gotBody)
}

func TestTwilioGatewayErrorCarriesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 20003, "message": "Authenticate"}`))
	}))
	defer server.Close()

	adapter := twilio.NewWithBaseURL(twilioConfig(), server.URL)
	svc := &Service{log: zap.NewNop(), provider: adapter}

	err := svc.Send(context.Background(), domain.Message{To: "+911234567890", Body: "hi"})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.Equal(t, "twilio", providerErr.Provider)
	require.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	require.Contains(t, providerErr.Payload, "20003")
}

func TestMSG91Send(t *testing.T) {
	var gotAuthKey string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthKey = r.Header.Get("authkey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.SMSConfig{Provider: "msg91", MSG91AuthKey: "key91", MSG91SenderID: "DLVRLY"}
	adapter := msg91.NewWithBaseURL(cfg, server.URL)
	svc := &Service{log: zap.NewNop(), provider: adapter}

	err := svc.Send(context.Background(), domain.Message{To: "911234567890", Body: "delivery update"})
	require.NoError(t, err)
	require.Equal(t, "key91", gotAuthKey)
	require.Equal(t, "DLVRLY", gotPayload["sender"])
}

func TestMSG91GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","message":"invalid authkey"}`))
	}))
	defer server.Close()

	cfg := config.SMSConfig{Provider: "msg91", MSG91AuthKey: "bad", MSG91SenderID: "DLVRLY"}
	adapter := msg91.NewWithBaseURL(cfg, server.URL)
	svc := &Service{log: zap.NewNop(), provider: adapter}

	err := svc.Send(context.Background(), domain.Message{To: "911234567890", Body: "hi"})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.Equal(t, "msg91", providerErr.Provider)
	require.Equal(t, http.StatusBadRequest, providerErr.StatusCode)
}

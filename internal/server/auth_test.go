package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deliverlylabs/deliverly/internal/config"
	ordergendomain "github.com/deliverlylabs/deliverly/internal/ordergen/domain"
	smsdomain "github.com/deliverlylabs/deliverly/internal/sms/domain"
	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
)

type stubOrdergen struct {
	result ordergendomain.Result
	err    error
}

func (s *stubOrdergen) Generate(ctx context.Context) (ordergendomain.Result, error) {
	return s.result, s.err
}

func (s *stubOrdergen) Expand(sub subscriptiondomain.Subscription, ref time.Time) ([]time.Time, error) {
	return nil, nil
}

type stubSMS struct {
	err error
}

func (s *stubSMS) Send(ctx context.Context, message smsdomain.Message) error {
	return s.err
}

func newTestRouter(srv *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv.RegisterRoutes(router)
	return router
}

func TestJobTokenRequired(t *testing.T) {
	srv := &Server{
		cfg: config.Config{Server: config.ServerConfig{JobToken: "job-secret"}},
		log: zap.NewNop(),
		ordergenSvc: &stubOrdergen{result: ordergendomain.Result{
			Success:                true,
			OrdersCreated:          3,
			SubscriptionsProcessed: 2,
		}},
	}
	router := newTestRouter(srv)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/jobs/generate-orders", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/jobs/generate-orders", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid token returns result", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/jobs/generate-orders", nil)
		req.Header.Set("Authorization", "Bearer job-secret")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Equal(t, true, body["success"])
		require.Equal(t, float64(3), body["ordersCreated"])
		require.Equal(t, float64(2), body["subscriptionsProcessed"])
	})
}

func TestJobTokenClosedWithoutConfiguration(t *testing.T) {
	srv := &Server{cfg: config.Config{}, log: zap.NewNop(), ordergenSvc: &stubOrdergen{}}
	router := newTestRouter(srv)

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/generate-orders", nil)
	req.Header.Set("Authorization", "Bearer anything")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGenerateOrdersFatalFailure(t *testing.T) {
	srv := &Server{
		cfg:         config.Config{Server: config.ServerConfig{JobToken: "job-secret"}},
		log:         zap.NewNop(),
		ordergenSvc: &stubOrdergen{err: errors.New("db down")},
	}
	router := newTestRouter(srv)

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/generate-orders", nil)
	req.Header.Set("Authorization", "Bearer job-secret")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "db down", body["error"])
}

func TestSMSKeyRequired(t *testing.T) {
	srv := &Server{
		cfg:    config.Config{SMS: config.SMSConfig{APIKey: "sms-secret"}},
		log:    zap.NewNop(),
		smsSvc: &stubSMS{},
	}
	router := newTestRouter(srv)
	payload := `{"to":"+911234567890","body":"hi"}`

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/sms/send", strings.NewReader(payload))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/sms/send", strings.NewReader(payload))
		req.Header.Set("x-api-key", "sms-secret")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestSendSMSErrorMapping(t *testing.T) {
	t.Run("validation error is 400", func(t *testing.T) {
		srv := &Server{
			cfg:    config.Config{SMS: config.SMSConfig{APIKey: "sms-secret"}},
			log:    zap.NewNop(),
			smsSvc: &stubSMS{err: smsdomain.ErrInvalidRecipient},
		}
		router := newTestRouter(srv)

		req := httptest.NewRequest(http.MethodPost, "/v1/sms/send", strings.NewReader(`{"to":"","body":"hi"}`))
		req.Header.Set("x-api-key", "sms-secret")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("gateway failure is 502", func(t *testing.T) {
		srv := &Server{
			cfg: config.Config{SMS: config.SMSConfig{APIKey: "sms-secret"}},
			log: zap.NewNop(),
			smsSvc: &stubSMS{err: &smsdomain.ProviderError{
				Provider:   "twilio",
				StatusCode: http.StatusServiceUnavailable,
				Payload:    "upstream down",
			}},
		}
		router := newTestRouter(srv)

		req := httptest.NewRequest(http.MethodPost, "/v1/sms/send", strings.NewReader(`{"to":"+911234567890","body":"hi"}`))
		req.Header.Set("x-api-key", "sms-secret")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusBadGateway, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "gateway_error", errObj["code"])
		require.Contains(t, errObj["message"], "upstream down")
	})
}

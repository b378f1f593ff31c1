package rest_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpulse/whale-sentry/internal/api/rest"
	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/mocks"
	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

// testHandlerMocks contains all the mocks needed for testing the REST handlers
type testHandlerMocks struct {
	ctrl     *gomock.Controller
	ingestor *mocks.MockIngestor
	store    *mocks.MockStore
	router   *gin.Engine
}

func newTestHandler(t *testing.T, webhookSecret string) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	m := &testHandlerMocks{
		ctrl:     ctrl,
		ingestor: mocks.NewMockIngestor(ctrl),
		store:    mocks.NewMockStore(ctrl),
	}

	m.router = gin.New()
	handler := rest.NewHandler(m.ingestor, m.store, webhookSecret)
	rest.SetupRoutes(m.router, handler)
	return m
}

func TestHealthCheck(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReceiveWebhookAcknowledgesAndDispatches(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	processed := make(chan *domain.Delivery, 1)
	m.ingestor.EXPECT().ProcessDelivery(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, delivery *domain.Delivery) error {
			processed <- delivery
			return nil
		})

	body := []byte(`{"confirmed":true,"chainId":"0x1","block":{"number":"19000001"},"logs":[{"transactionHash":"0xabc"}]}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	select {
	case delivery := <-processed:
		assert.True(t, delivery.Confirmed)
		assert.Equal(t, "0x1", delivery.ChainID)
		assert.Len(t, delivery.Logs, 1)
	case <-time.After(time.Second):
		t.Fatal("delivery was never dispatched for processing")
	}
}

func TestReceiveWebhookMalformedBody(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	// still acknowledged, never dispatched
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("not json")))
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReceiveWebhookEmptyBody(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReceiveWebhookVerifiesSignature(t *testing.T) {
	const secret = "shhh"
	m := newTestHandler(t, secret)
	defer m.ctrl.Finish()

	body := []byte(`{"confirmed":true,"chainId":"0x1","streamId":"s-1","tag":"t-1"}`)

	t.Run("valid signature dispatches", func(t *testing.T) {
		processed := make(chan struct{}, 1)
		m.ingestor.EXPECT().ProcessDelivery(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *domain.Delivery) error {
				processed <- struct{}{}
				return nil
			})

		signature := "0x" + hex.EncodeToString(crypto.Keccak256(append(body, []byte(secret)...)))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
		req.Header.Set("x-signature", signature)
		m.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		select {
		case <-processed:
		case <-time.After(time.Second):
			t.Fatal("delivery was never dispatched for processing")
		}
	})

	t.Run("invalid signature is acknowledged but dropped", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
		req.Header.Set("x-signature", "0xbadbadbad")
		m.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("missing signature is acknowledged but dropped", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
		m.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})
}

func TestListWallets(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	m.store.EXPECT().ListMonitoredAddresses(gomock.Any(), int64(4242)).Return([]schema.MonitoredAddress{
		{
			Address:      "0xab5801a7d398351b8be11c439e05c5b3259aec9b",
			ChatID:       4242,
			ThresholdUSD: decimal.NewFromInt(1000),
			Active:       true,
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets?chat_id=4242", nil)
	m.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xab5801a7d398351b8be11c439e05c5b3259aec9b")
}

func TestListWalletsRequiresChatID(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactions(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	address := "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B"

	m.store.EXPECT().GetMonitoredAddress(gomock.Any(), "0xab5801a7d398351b8be11c439e05c5b3259aec9b").
		Return(&schema.MonitoredAddress{ID: 7}, nil)
	m.store.EXPECT().ListTransactions(gomock.Any(), int64(7), 50).Return([]schema.TransactionRecord{
		{
			TxHash:    "0xdeadbeef",
			Amount:    decimal.NewFromInt(5),
			AmountUSD: decimal.NewFromInt(10),
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?address="+address, nil)
	m.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xdeadbeef")
}

func TestListTransactionsUnknownAddress(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	m.store.EXPECT().GetMonitoredAddress(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrAddressNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?address=0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B", nil)
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsInvalidAddress(t *testing.T) {
	m := newTestHandler(t, "")
	defer m.ctrl.Finish()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?address=nonsense", nil)
	m.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

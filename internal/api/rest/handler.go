package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/api/rest/dto"
	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/pipeline"
	"github.com/blockpulse/whale-sentry/internal/providers/moralis"
	"github.com/blockpulse/whale-sentry/internal/store"
)

const defaultTransactionLimit = 50

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ReceiveWebhook accepts a transfer delivery from the streams provider.
	// Always acknowledges with 200 {"status":"ok"}; processing happens after
	// the acknowledgement and never changes the response.
	// POST /webhook
	ReceiveWebhook(c *gin.Context)

	// ListWallets retrieves the monitored addresses registered by a chat
	// GET /api/v1/wallets?chat_id=<id>
	ListWallets(c *gin.Context)

	// ListTransactions retrieves recorded transfers for a monitored address
	// GET /api/v1/transactions?address=<address>&limit=<limit>
	ListTransactions(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ingestor      pipeline.Ingestor
	store         store.Store
	webhookSecret string
}

// NewHandler creates a new REST API handler. When webhookSecret is empty,
// webhook signature verification is disabled.
func NewHandler(ingestor pipeline.Ingestor, s store.Store, webhookSecret string) Handler {
	return &handler{
		ingestor:      ingestor,
		store:         s,
		webhookSecret: webhookSecret,
	}
}

// ReceiveWebhook acknowledges a delivery and dispatches it for processing.
// The acknowledgement is unconditional: a malformed body or a bad signature
// is logged and dropped, never surfaced to the provider.
func (h *handler) ReceiveWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})

	if err != nil {
		logger.Error(errors.New("failed to read webhook body"), zap.Error(err))
		return
	}

	if h.webhookSecret != "" {
		signature := c.GetHeader("x-signature")
		if !moralis.VerifySignature(body, h.webhookSecret, signature) {
			logger.Warn("dropping webhook with invalid signature",
				zap.String("client_ip", c.ClientIP()))
			return
		}
	}

	var delivery domain.Delivery
	if err := json.Unmarshal(body, &delivery); err != nil {
		logger.Warn("dropping malformed webhook body", zap.Error(err))
		return
	}

	// detached from the request context so processing survives the response
	go func() {
		ctx := context.Background()
		if err := h.ingestor.ProcessDelivery(ctx, &delivery); err != nil {
			logger.Error(errors.New("failed to process webhook delivery"), zap.Error(err))
		}
	}()
}

// ListWallets retrieves the monitored addresses registered by a chat
func (h *handler) ListWallets(c *gin.Context) {
	chatIDParam := c.Query("chat_id")
	if chatIDParam == "" {
		respondBadRequest(c, "chat_id is required")
		return
	}
	chatID, err := strconv.ParseInt(chatIDParam, 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid chat_id")
		return
	}

	records, err := h.store.ListMonitoredAddresses(c.Request.Context(), chatID)
	if err != nil {
		respondInternalError(c, err, "Failed to list wallets")
		return
	}

	c.JSON(http.StatusOK, dto.WalletsFromSchema(records))
}

// ListTransactions retrieves recorded transfers for a monitored address
func (h *handler) ListTransactions(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		respondBadRequest(c, "address is required")
		return
	}
	if !common.IsHexAddress(address) {
		respondBadRequest(c, "Invalid address")
		return
	}

	limit := defaultTransactionLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 || parsed > 500 {
			respondBadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	monitored, err := h.store.GetMonitoredAddress(c.Request.Context(), domain.NormalizeAddress(address))
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			respondNotFound(c, "Address is not monitored")
			return
		}
		respondInternalError(c, err, "Failed to look up address")
		return
	}

	records, err := h.store.ListTransactions(c.Request.Context(), monitored.ID, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.TransactionsFromSchema(records))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Package pipeline processes confirmed transfer deliveries end to end:
// normalize, match against monitored addresses, deduplicate, value, persist,
// alert, and optionally trade.
package pipeline

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/normalizer"
	"github.com/blockpulse/whale-sentry/internal/notifier"
	"github.com/blockpulse/whale-sentry/internal/providers/exchange"
	"github.com/blockpulse/whale-sentry/internal/providers/pricing"
	"github.com/blockpulse/whale-sentry/internal/store"
	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

// Ingestor accepts webhook deliveries for processing
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline.go -package=mocks -mock_names=Ingestor=MockIngestor
type Ingestor interface {
	ProcessDelivery(ctx context.Context, delivery *domain.Delivery) error
}

// Pipeline is the transfer processing state machine
type Pipeline struct {
	store         store.Store
	prices        pricing.PriceSource
	exchange      exchange.Exchange
	notifier      notifier.Notifier
	tradeFraction decimal.Decimal
}

// New creates a processing pipeline. tradeFraction is the share of the
// transfer's USD value sold when the trade trigger fires.
func New(s store.Store, prices pricing.PriceSource, ex exchange.Exchange, n notifier.Notifier, tradeFraction decimal.Decimal) *Pipeline {
	return &Pipeline{
		store:         s,
		prices:        prices,
		exchange:      ex,
		notifier:      n,
		tradeFraction: tradeFraction,
	}
}

// ProcessDelivery runs one webhook delivery through the pipeline. Events
// within a delivery are processed independently; a failure on one never
// blocks the others.
func (p *Pipeline) ProcessDelivery(ctx context.Context, delivery *domain.Delivery) error {
	if delivery.IsVerificationPing() {
		logger.InfoCtx(ctx, "received stream verification ping",
			zap.String("streamID", delivery.StreamID),
			zap.String("tag", delivery.Tag))
		return nil
	}

	if !delivery.Confirmed {
		logger.InfoCtx(ctx, "skipping unconfirmed delivery",
			zap.String("blockNumber", delivery.Block.Number))
		return nil
	}

	blockNumber := normalizer.ParseBlockNumber(delivery.Block.Number)

	for _, t := range delivery.ERC20Transfers {
		event, err := normalizer.FromStructured(t, blockNumber)
		if err != nil {
			logger.InfoCtx(ctx, "skipping non-normalizable transfer", zap.Error(err))
			continue
		}
		p.processEvent(ctx, event)
	}

	for _, l := range delivery.Logs {
		event, err := normalizer.FromLog(l, blockNumber)
		if err != nil {
			logger.InfoCtx(ctx, "skipping non-normalizable log", zap.Error(err))
			continue
		}
		p.processEvent(ctx, event)
	}

	if blockNumber > 0 && delivery.ChainID != "" {
		p.advanceCursor(ctx, delivery.ChainID, blockNumber)
	}

	return nil
}

// advanceCursor moves the per-chain block cursor forward. Replayed
// deliveries arrive out of order, so the cursor never moves backwards.
func (p *Pipeline) advanceCursor(ctx context.Context, chainID string, blockNumber uint64) {
	current, err := p.store.GetBlockCursor(ctx, chainID)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to read block cursor"),
			zap.String("chainID", chainID),
			zap.Error(err))
		return
	}
	if blockNumber <= current {
		return
	}

	if err := p.store.SetBlockCursor(ctx, chainID, blockNumber); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to advance block cursor"),
			zap.String("chainID", chainID),
			zap.Uint64("blockNumber", blockNumber),
			zap.Error(err))
	}
}

// processEvent handles a single normalized transfer event
func (p *Pipeline) processEvent(ctx context.Context, event *domain.TransferEvent) {
	monitored, err := p.store.GetMonitoredAddress(ctx, domain.NormalizeAddress(event.ToAddress))
	if err != nil {
		if !errors.Is(err, domain.ErrAddressNotFound) {
			logger.ErrorCtx(ctx, errors.New("failed to look up monitored address"),
				zap.String("address", event.ToAddress),
				zap.Error(err))
		}
		return
	}
	if !monitored.Active {
		return
	}

	existing, err := p.store.GetTransactionByHash(ctx, event.TxHash)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to check for duplicate transaction"),
			zap.String("txHash", event.TxHash),
			zap.Error(err))
		return
	}
	if existing != nil {
		logger.InfoCtx(ctx, "skipping already-recorded transaction",
			zap.String("txHash", event.TxHash))
		return
	}

	unitPrice := p.prices.PriceUSD(ctx, event.TokenAddress)
	amountUSD := event.AmountUSD(unitPrice)

	record := &schema.TransactionRecord{
		TxHash:             event.TxHash,
		MonitoredAddressID: monitored.ID,
		TokenAddress:       domain.NormalizeAddress(event.TokenAddress),
		TokenSymbol:        event.TokenSymbol,
		Amount:             event.Quantity(),
		AmountUSD:          amountUSD,
		BlockNumber:        event.BlockNumber,
	}

	if err := p.store.CreateTransaction(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// lost the race against a replayed delivery; the first insert won
			logger.InfoCtx(ctx, "skipping already-recorded transaction",
				zap.String("txHash", event.TxHash))
			return
		}
		logger.ErrorCtx(ctx, errors.New("failed to persist transaction record"),
			zap.String("txHash", event.TxHash),
			zap.Error(err))
		return
	}

	logger.InfoCtx(ctx, "recorded whale transfer",
		zap.String("txHash", event.TxHash),
		zap.String("address", monitored.Address),
		zap.String("amount", record.Amount.String()),
		zap.String("amountUSD", amountUSD.StringFixed(2)))

	if err := p.notifier.Send(ctx, monitored.ChatID, notifier.FormatTransferAlert(event, amountUSD)); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to send transfer alert"),
			zap.Int64("chatID", monitored.ChatID),
			zap.Error(err))
	}

	if amountUSD.GreaterThanOrEqual(monitored.ThresholdUSD) {
		p.triggerTrade(ctx, monitored, record, event)
	}
}

// triggerTrade places a hedging sell for a fraction of the transfer's USD
// value. Any failure leaves the record's trade flag untouched.
func (p *Pipeline) triggerTrade(ctx context.Context, monitored *schema.MonitoredAddress, record *schema.TransactionRecord, event *domain.TransferEvent) {
	if event.TokenSymbol == "" {
		logger.InfoCtx(ctx, "no token symbol on transfer, skipping trade",
			zap.String("txHash", event.TxHash))
		return
	}

	market, err := p.exchange.FindMarket(ctx, event.TokenSymbol)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			logger.InfoCtx(ctx, "no market for token, skipping trade",
				zap.String("tokenSymbol", event.TokenSymbol))
		} else {
			logger.ErrorCtx(ctx, errors.New("failed to resolve market"),
				zap.String("tokenSymbol", event.TokenSymbol),
				zap.Error(err))
		}
		return
	}

	sellAmount := record.AmountUSD.Mul(p.tradeFraction)
	order, err := p.exchange.Sell(ctx, market, sellAmount)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to place sell order"),
			zap.String("market", market),
			zap.String("amount", sellAmount.StringFixed(2)),
			zap.Error(err))
		return
	}

	if err := p.store.MarkTradeTriggered(ctx, record.ID); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to mark trade triggered"),
			zap.Int64("recordID", record.ID),
			zap.Error(err))
	}
	record.TradeTriggered = true

	logger.InfoCtx(ctx, "trade executed",
		zap.String("market", market),
		zap.Int64("orderID", order.OrderID),
		zap.String("amount", sellAmount.StringFixed(2)))

	if err := p.notifier.Send(ctx, monitored.ChatID, notifier.FormatTradeAlert(market, sellAmount, order.OrderID)); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to send trade alert"),
			zap.Int64("chatID", monitored.ChatID),
			zap.Error(err))
	}
}

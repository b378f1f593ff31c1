// Package registry manages the set of monitored wallet addresses and keeps
// the upstream stream subscriptions in sync with it.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/providers/moralis"
	"github.com/blockpulse/whale-sentry/internal/store"
	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

// Registry maintains monitored addresses and their stream subscriptions
type Registry struct {
	store            store.Store
	streams          moralis.Streams
	callbackURL      string
	defaultThreshold decimal.Decimal
}

// New creates an address registry
func New(s store.Store, streams moralis.Streams, callbackURL string, defaultThreshold decimal.Decimal) *Registry {
	return &Registry{
		store:            s,
		streams:          streams,
		callbackURL:      callbackURL,
		defaultThreshold: defaultThreshold,
	}
}

// Watch registers an address for monitoring and attaches a stream
// subscription to it. The threshold falls back to the registry default when
// the caller passes a non-positive value.
func (r *Registry) Watch(ctx context.Context, address string, chatID int64, thresholdUSD decimal.Decimal) (*schema.MonitoredAddress, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	if r.callbackURL == "" {
		return nil, domain.ErrMissingCallbackURL
	}

	if !thresholdUSD.IsPositive() {
		thresholdUSD = r.defaultThreshold
	}

	record := &schema.MonitoredAddress{
		Address:      domain.NormalizeAddress(address),
		ChatID:       chatID,
		ThresholdUSD: thresholdUSD,
		Active:       true,
	}

	if err := r.store.CreateMonitoredAddress(ctx, record); err != nil {
		return nil, err
	}

	streamID, err := r.streams.CreateSubscription(ctx, record.Address, r.callbackURL)
	if err != nil {
		// Roll the record back so a retry is not rejected as a duplicate
		if delErr := r.store.DeleteMonitoredAddress(ctx, record.Address, chatID); delErr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to remove address after subscription failure"),
				zap.String("address", record.Address),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create stream subscription: %w", err)
	}

	if err := r.store.SetStreamID(ctx, record.Address, &streamID); err != nil {
		return nil, err
	}
	record.StreamID = &streamID

	logger.InfoCtx(ctx, "address registered for monitoring",
		zap.String("address", record.Address),
		zap.Int64("chatID", chatID),
		zap.String("streamID", streamID))

	return record, nil
}

// Unwatch removes an address from monitoring. The stream subscription is
// detached best-effort before the record is deleted.
func (r *Registry) Unwatch(ctx context.Context, address string, chatID int64) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	normalized := domain.NormalizeAddress(address)

	record, err := r.store.GetMonitoredAddress(ctx, normalized)
	if err != nil {
		return err
	}
	if record.ChatID != chatID {
		return domain.ErrAddressNotFound
	}

	if record.StreamID != nil {
		if err := r.streams.DeleteSubscription(ctx, *record.StreamID); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to delete stream subscription"),
				zap.String("streamID", *record.StreamID),
				zap.Error(err))
		}
	}

	return r.store.DeleteMonitoredAddress(ctx, normalized, chatID)
}

// List returns the monitored addresses registered by a chat
func (r *Registry) List(ctx context.Context, chatID int64) ([]schema.MonitoredAddress, error) {
	return r.store.ListMonitoredAddresses(ctx, chatID)
}

// SetThreshold updates the USD alert threshold of a monitored address
func (r *Registry) SetThreshold(ctx context.Context, address string, chatID int64, thresholdUSD decimal.Decimal) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}
	if !thresholdUSD.IsPositive() {
		return errors.New("threshold must be positive")
	}

	normalized := domain.NormalizeAddress(address)

	record, err := r.store.GetMonitoredAddress(ctx, normalized)
	if err != nil {
		return err
	}
	if record.ChatID != chatID {
		return domain.ErrAddressNotFound
	}

	return r.store.UpdateThreshold(ctx, normalized, chatID, thresholdUSD)
}

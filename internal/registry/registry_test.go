package registry_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/mocks"
	"github.com/blockpulse/whale-sentry/internal/registry"
	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

const (
	callbackURL    = "https://sentry.example.com/webhook"
	watchedAddress = "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B"
	lowerAddress   = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
	chatID         = int64(4242)
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testRegistryMocks contains all the mocks needed for testing the registry
type testRegistryMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	streams  *mocks.MockStreams
	registry *registry.Registry
}

func newTestRegistry(t *testing.T, callback string) *testRegistryMocks {
	ctrl := gomock.NewController(t)

	m := &testRegistryMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		streams: mocks.NewMockStreams(ctrl),
	}
	m.registry = registry.New(m.store, m.streams, callback, decimal.NewFromInt(1000))
	return m
}

func TestWatch(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().CreateMonitoredAddress(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, record *schema.MonitoredAddress) error {
			assert.Equal(t, lowerAddress, record.Address)
			assert.Equal(t, chatID, record.ChatID)
			assert.True(t, record.ThresholdUSD.Equal(decimal.NewFromInt(5000)))
			assert.True(t, record.Active)
			record.ID = 7
			return nil
		})
	m.streams.EXPECT().CreateSubscription(ctx, lowerAddress, callbackURL).Return("stream-1", nil)
	m.store.EXPECT().SetStreamID(ctx, lowerAddress, gomock.Any()).Return(nil)

	record, err := m.registry.Watch(ctx, watchedAddress, chatID, decimal.NewFromInt(5000))
	require.NoError(t, err)

	require.NotNil(t, record.StreamID)
	assert.Equal(t, "stream-1", *record.StreamID)
}

func TestWatchAppliesDefaultThreshold(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().CreateMonitoredAddress(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, record *schema.MonitoredAddress) error {
			assert.True(t, record.ThresholdUSD.Equal(decimal.NewFromInt(1000)))
			return nil
		})
	m.streams.EXPECT().CreateSubscription(ctx, lowerAddress, callbackURL).Return("stream-1", nil)
	m.store.EXPECT().SetStreamID(ctx, lowerAddress, gomock.Any()).Return(nil)

	_, err := m.registry.Watch(ctx, watchedAddress, chatID, decimal.Zero)
	require.NoError(t, err)
}

func TestWatchInvalidAddress(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	_, err := m.registry.Watch(context.Background(), "nonsense", chatID, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidAddress))
}

func TestWatchDuplicateAddress(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.store.EXPECT().CreateMonitoredAddress(ctx, gomock.Any()).Return(domain.ErrAddressExists)

	_, err := m.registry.Watch(ctx, watchedAddress, chatID, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrAddressExists))
}

func TestWatchRequiresCallbackURL(t *testing.T) {
	m := newTestRegistry(t, "")
	defer m.ctrl.Finish()

	// fails loudly before anything is persisted, so a retry after the
	// operator fixes the configuration is not rejected as a duplicate
	_, err := m.registry.Watch(context.Background(), watchedAddress, chatID, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrMissingCallbackURL))
}

func TestWatchRollsBackOnSubscriptionFailure(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().CreateMonitoredAddress(ctx, gomock.Any()).Return(nil)
	m.streams.EXPECT().CreateSubscription(ctx, lowerAddress, callbackURL).
		Return("", errors.New("provider unavailable"))
	m.store.EXPECT().DeleteMonitoredAddress(ctx, lowerAddress, chatID).Return(nil)

	_, err := m.registry.Watch(ctx, watchedAddress, chatID, decimal.Zero)
	require.Error(t, err)

	// the retry starts from a clean slate
	m.store.EXPECT().CreateMonitoredAddress(ctx, gomock.Any()).Return(nil)
	m.streams.EXPECT().CreateSubscription(ctx, lowerAddress, callbackURL).Return("stream-1", nil)
	m.store.EXPECT().SetStreamID(ctx, lowerAddress, gomock.Any()).Return(nil)

	_, err = m.registry.Watch(ctx, watchedAddress, chatID, decimal.Zero)
	require.NoError(t, err)
}

func TestUnwatch(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()
	streamID := "stream-1"

	m.store.EXPECT().GetMonitoredAddress(ctx, lowerAddress).Return(&schema.MonitoredAddress{
		ID:       7,
		Address:  lowerAddress,
		ChatID:   chatID,
		StreamID: &streamID,
	}, nil)
	m.streams.EXPECT().DeleteSubscription(ctx, "stream-1").Return(nil)
	m.store.EXPECT().DeleteMonitoredAddress(ctx, lowerAddress, chatID).Return(nil)

	err := m.registry.Unwatch(ctx, watchedAddress, chatID)
	require.NoError(t, err)
}

func TestUnwatchSurvivesStreamDeleteFailure(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()
	streamID := "stream-1"

	m.store.EXPECT().GetMonitoredAddress(ctx, lowerAddress).Return(&schema.MonitoredAddress{
		ID:       7,
		Address:  lowerAddress,
		ChatID:   chatID,
		StreamID: &streamID,
	}, nil)
	m.streams.EXPECT().DeleteSubscription(ctx, "stream-1").Return(errors.New("provider unavailable"))
	m.store.EXPECT().DeleteMonitoredAddress(ctx, lowerAddress, chatID).Return(nil)

	// the local record is removed even when the provider call fails
	err := m.registry.Unwatch(ctx, watchedAddress, chatID)
	require.NoError(t, err)
}

func TestUnwatchWrongChat(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetMonitoredAddress(ctx, lowerAddress).Return(&schema.MonitoredAddress{
		ID:      7,
		Address: lowerAddress,
		ChatID:  chatID + 1,
	}, nil)

	err := m.registry.Unwatch(ctx, watchedAddress, chatID)
	assert.True(t, errors.Is(err, domain.ErrAddressNotFound))
}

func TestUnwatchUnknownAddress(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.store.EXPECT().GetMonitoredAddress(ctx, lowerAddress).Return(nil, domain.ErrAddressNotFound)

	err := m.registry.Unwatch(ctx, watchedAddress, chatID)
	assert.True(t, errors.Is(err, domain.ErrAddressNotFound))
}

func TestSetThreshold(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetMonitoredAddress(ctx, lowerAddress).Return(&schema.MonitoredAddress{
		ID:      7,
		Address: lowerAddress,
		ChatID:  chatID,
	}, nil)
	m.store.EXPECT().UpdateThreshold(ctx, lowerAddress, chatID, gomock.Any()).Return(nil)

	err := m.registry.SetThreshold(ctx, watchedAddress, chatID, decimal.NewFromInt(2500))
	require.NoError(t, err)
}

func TestSetThresholdRejectsNonPositive(t *testing.T) {
	m := newTestRegistry(t, callbackURL)
	defer m.ctrl.Finish()

	err := m.registry.SetThreshold(context.Background(), watchedAddress, chatID, decimal.Zero)
	assert.Error(t, err)
}

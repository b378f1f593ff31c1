package moralis_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/mocks"
	"github.com/blockpulse/whale-sentry/internal/normalizer"
	"github.com/blockpulse/whale-sentry/internal/providers/moralis"
)

const (
	streamsURL  = "https://api.moralis-streams.com"
	callbackURL = "https://sentry.example.com/webhook"
	address     = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
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

func newTestClient(t *testing.T) (moralis.Streams, *mocks.MockHTTPClient, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := moralis.NewClient(moralis.Config{
		BaseURL: streamsURL,
		APIKey:  "test-key",
		ChainID: "0x1",
	}, httpClient)
	return client, httpClient, ctrl
}

func TestCreateSubscription(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	ctx := context.Background()

	httpClient.EXPECT().Put(ctx, streamsURL+"/streams/evm", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, headers map[string]string, body io.Reader) ([]byte, error) {
			assert.Equal(t, "test-key", headers["X-API-Key"])

			raw, err := io.ReadAll(body)
			require.NoError(t, err)

			var req map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &req))
			assert.Equal(t, callbackURL, req["webhookUrl"])
			assert.Equal(t, []interface{}{"0x1"}, req["chainIds"])
			assert.Equal(t, []interface{}{normalizer.TransferTopic()}, req["topic0"])
			assert.NotEmpty(t, req["tag"])

			return []byte(`{"id":"stream-1"}`), nil
		})

	httpClient.EXPECT().Post(ctx, streamsURL+"/streams/evm/stream-1/address", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ map[string]string, body io.Reader) ([]byte, error) {
			raw, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"address":["`+address+`"]}`, string(raw))
			return []byte(`{}`), nil
		})

	streamID, err := client.CreateSubscription(ctx, address, callbackURL)
	require.NoError(t, err)
	assert.Equal(t, "stream-1", streamID)
}

func TestCreateSubscriptionMissingCallback(t *testing.T) {
	client, _, ctrl := newTestClient(t)
	defer ctrl.Finish()

	_, err := client.CreateSubscription(context.Background(), address, "")
	assert.True(t, errors.Is(err, domain.ErrMissingCallbackURL))
}

func TestCreateSubscriptionCleansUpOnAttachFailure(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	ctx := context.Background()

	httpClient.EXPECT().Put(ctx, streamsURL+"/streams/evm", gomock.Any(), gomock.Any()).
		Return([]byte(`{"id":"stream-1"}`), nil)
	httpClient.EXPECT().Post(ctx, streamsURL+"/streams/evm/stream-1/address", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("attach failed"))
	// the half-created stream is torn down
	httpClient.EXPECT().Delete(ctx, streamsURL+"/streams/evm/stream-1", gomock.Any()).
		Return([]byte(`{}`), nil)

	_, err := client.CreateSubscription(ctx, address, callbackURL)
	assert.Error(t, err)
}

func TestCreateSubscriptionEmptyStreamID(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	ctx := context.Background()

	httpClient.EXPECT().Put(ctx, streamsURL+"/streams/evm", gomock.Any(), gomock.Any()).
		Return([]byte(`{}`), nil)

	_, err := client.CreateSubscription(ctx, address, callbackURL)
	assert.Error(t, err)
}

func TestDeleteSubscription(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	ctx := context.Background()

	httpClient.EXPECT().Delete(ctx, streamsURL+"/streams/evm/stream-1", gomock.Any()).
		Return([]byte(`{}`), nil)

	err := client.DeleteSubscription(ctx, "stream-1")
	require.NoError(t, err)
}

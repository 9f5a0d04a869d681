package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConnectWithRetry(t *testing.T) {
	refused := errors.New("connection refused")
	calls := 0
	connect := func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		calls++
		if calls < 3 {
			return nil, refused
		}
		return &mongo.Client{}, nil
	}

	client, err := ConnectWithRetry(context.Background(), connect, "mongodb://x", time.Second, 3, time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, client)
	require.Equal(t, 3, calls)
}

func TestConnectWithRetryGivesUp(t *testing.T) {
	refused := errors.New("connection refused")
	calls := 0
	connect := func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		calls++
		return nil, refused
	}

	_, err := ConnectWithRetry(context.Background(), connect, "mongodb://x", time.Second, 2, time.Millisecond)
	require.ErrorIs(t, err, refused)
	require.Equal(t, 2, calls)
}

func TestConnectWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	connect := func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		cancel()
		return nil, errors.New("down")
	}
	_, err := ConnectWithRetry(ctx, connect, "mongodb://x", time.Second, 5, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

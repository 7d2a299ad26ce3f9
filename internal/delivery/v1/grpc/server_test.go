package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T) (*GRPCServer, healthpb.HealthClient) {
	t.Helper()

	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, logger.Nop())
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthStartsNotServing(t *testing.T) {
	srv, client := startServer(t)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client))

	srv.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client))
}

func TestWatchStoreFollowsPing(t *testing.T) {
	srv, client := startServer(t)

	var failing atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go srv.WatchStore(ctx, func(context.Context) error {
		if failing.Load() {
			return errors.New("connection refused")
		}
		return nil
	}, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return checkStatus(t, client) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	failing.Store(true)
	require.Eventually(t, func() bool {
		return checkStatus(t, client) == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)
}

package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"MarketDash/pkg/config"
	xhttp "MarketDash/pkg/http"
	applogger "MarketDash/pkg/logger"
)

type initFunc func(ctx context.Context) error

func (f initFunc) Init(ctx context.Context) error { return f(ctx) }

func TestRunContext_InitThenShutdown(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	srv := xhttp.NewServer(applogger.Nop(), nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0), xhttp.WithMetricsPath(""))
	ran := make(chan struct{})
	app := New(cfg, applogger.Nop(), srv, initFunc(func(context.Context) error {
		close(ran)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("initializer did not run")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not shut down")
	}
}

package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/dsr-connector/internal/config"
)

func TestRunStop(t *testing.T) {
	srv := NewServer(config.HttpServer{Port: "0", Timeout: time.Second, IdleTimeout: time.Second}, http.NotFoundHandler())
	assert.Equal(t, ":0", srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

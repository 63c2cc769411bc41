package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForStop(t *testing.T) {
	tests := []struct {
		name    string
		signal  bool
		stopErr error
		wantErr bool
	}{
		{name: "signal shuts down cleanly", signal: true},
		{name: "server failing at startup unblocks", stopErr: serverExit("gRPC", errors.New("address already in use")), wantErr: true},
		{name: "server returning on its own unblocks", stopErr: serverExit("metrics", nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit := make(chan os.Signal, 1)
			stopped := make(chan error, 1)
			if tt.signal {
				quit <- syscall.SIGTERM
			}
			if tt.stopErr != nil {
				stopped <- tt.stopErr
			}

			result := make(chan error, 1)
			go func() { result <- waitForStop(quit, stopped) }()

			select {
			case err := <-result:
				if tt.wantErr {
					require.Error(t, err)
					assert.Equal(t, tt.stopErr, err)
					return
				}
				assert.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("waitForStop did not return")
			}
		})
	}
}

func TestServerExit(t *testing.T) {
	cause := errors.New("address already in use")
	err := serverExit("gRPC", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gRPC server")

	assert.EqualError(t, serverExit("metrics", nil), "metrics server stopped")
}

package connectedaccounts

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

func TestWaitForConnectionAlreadyActive(t *testing.T) {
	var retrieves int32
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&retrieves, 1)
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "ACTIVE"))
	}))

	start := time.Now()
	acc, err := m.WaitForConnection(context.Background(), "ca_1", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, acc.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&retrieves), "already-active accounts resolve with one retrieve")
	assert.Less(t, time.Since(start), pollInterval, "no poll delay for already-active accounts")
}

func TestWaitForConnectionBecomesActive(t *testing.T) {
	var retrieves int32
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&retrieves, 1)
		status := "INITIATED"
		if n >= 3 {
			status = "ACTIVE"
		}
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", status))
	}))

	acc, err := m.WaitForConnection(context.Background(), "ca_1", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, acc.Status)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&retrieves), int32(3))
}

func TestWaitForConnectionFailureTerminal(t *testing.T) {
	reason := "consent revoked"
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := wireAccount("ca_1", "FAILED")
		acc.StatusReason = &reason
		_ = json.NewEncoder(w).Encode(acc)
	}))

	_, err := m.WaitForConnection(context.Background(), "ca_1", 10*time.Second)
	require.Error(t, err)
	assert.Equal(t, sdkerrors.CodeConnectionFailed, sdkerrors.CodeOf(err))

	var sdkErr *sdkerrors.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, "FAILED", sdkErr.Metadata["status"])
	assert.Equal(t, "consent revoked", sdkErr.Metadata["statusReason"])
}

func TestWaitForConnectionExpired(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "EXPIRED"))
	}))

	_, err := m.WaitForConnection(context.Background(), "ca_1", 10*time.Second)
	require.Error(t, err)
	assert.Equal(t, sdkerrors.CodeConnectionFailed, sdkerrors.CodeOf(err))
}

func TestWaitForConnectionNotFound(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := m.WaitForConnection(context.Background(), "ca_gone", 10*time.Second)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsNotFound(err))

	var sdkErr *sdkerrors.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, "ca_gone", sdkErr.Metadata["id"])
}

func TestWaitForConnectionTimeout(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "INITIATED"))
	}))

	timeout := 1500 * time.Millisecond
	start := time.Now()
	_, err := m.WaitForConnection(context.Background(), "ca_1", timeout)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, sdkerrors.IsTimeout(err))
	assert.Contains(t, err.Error(), "ca_1")
	// Soft upper bound: at most timeout plus one poll interval (plus slack
	// for slow CI).
	assert.Less(t, elapsed, timeout+pollInterval+500*time.Millisecond)

	var sdkErr *sdkerrors.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, "ca_1", sdkErr.Metadata["connectedAccountId"])
}

func TestWaitForConnectionContextCancel(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "INITIATED"))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := m.WaitForConnection(ctx, "ca_1", 30*time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitForConnectionPropagatesNetworkErrors(t *testing.T) {
	srvClient, err := client.New(client.WithBaseURL("http://127.0.0.1:1"), client.WithTimeout(200*time.Millisecond))
	require.NoError(t, err)
	m, err := NewManager(srvClient)
	require.NoError(t, err)

	_, err = m.WaitForConnection(context.Background(), "ca_1", 2*time.Second)
	require.Error(t, err)
	// Transport errors propagate unchanged; they are not SDK errors.
	assert.Equal(t, sdkerrors.Code(""), sdkerrors.CodeOf(err))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusActive.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusInitiated.IsTerminal())
	assert.False(t, StatusInitializing.IsTerminal())
	assert.False(t, StatusInactive.IsTerminal())
}

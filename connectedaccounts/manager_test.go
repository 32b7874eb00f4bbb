package connectedaccounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

func newManager(t *testing.T, handler http.Handler) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(client.WithBaseURL(srv.URL))
	require.NoError(t, err)
	m, err := NewManager(c)
	require.NoError(t, err)
	return m, srv
}

func wireAccount(id, status string) client.ConnectedAccount {
	return client.ConnectedAccount{
		ID:     id,
		Status: status,
		AuthConfig: client.ConnectedAccountAuth{
			ID:                "ac_1",
			IsComposioManaged: true,
		},
		Toolkit:   client.WireToolkit{Slug: "gmail"},
		UserID:    "user-1",
		CreatedAt: "2025-01-02T03:04:05Z",
		UpdatedAt: "2025-01-02T03:04:06Z",
	}
}

func TestNewManagerRequiresClient(t *testing.T) {
	_, err := NewManager(nil)
	require.Error(t, err)
	assert.Equal(t, sdkerrors.CodeConfiguration, sdkerrors.CodeOf(err))
}

func TestListValidatesOutboundFilters(t *testing.T) {
	var calls int32
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{})
	}))

	_, err := m.List(context.Background(), ListFilters{Statuses: []Status{"BOGUS"}})
	require.Error(t, err)
	assert.True(t, sdkerrors.IsValidation(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "validation failures must not hit the network")

	_, err = m.List(context.Background(), ListFilters{Limit: -1})
	require.Error(t, err)
	assert.True(t, sdkerrors.IsValidation(err))
}

func TestListFlattensAccounts(t *testing.T) {
	reason := "user denied consent"
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := wireAccount("ca_1", "FAILED")
		acc.StatusReason = &reason
		acc.State = &client.ConnectionState{Val: map[string]any{"redirectUrl": "https://auth.example.com"}}
		_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{Items: []client.ConnectedAccount{acc}})
	}))

	out, err := m.List(context.Background(), ListFilters{UserIDs: []string{"user-1"}, Statuses: []Status{StatusFailed}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	got := out.Items[0]
	assert.Equal(t, "ca_1", got.ID)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "ac_1", got.AuthConfigID)
	assert.True(t, got.IsComposioManaged)
	assert.Equal(t, "gmail", got.ToolkitSlug)
	assert.Equal(t, "user denied consent", got.StatusReason)
	assert.Equal(t, 2025, got.CreatedAt.Year())
}

func TestListToleratesBadTimestamps(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc := wireAccount("ca_1", "ACTIVE")
		acc.CreatedAt = "not-a-timestamp"
		_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{Items: []client.ConnectedAccount{acc}})
	}))

	out, err := m.List(context.Background(), ListFilters{})
	require.NoError(t, err, "inbound shape drift must not fail the call")
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].CreatedAt.IsZero())
	assert.Equal(t, StatusActive, out.Items[0].Status)
}

func TestInitiateConflictOnExistingAccount(t *testing.T) {
	var created int32
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{
				Items: []client.ConnectedAccount{wireAccount("ca_existing", "ACTIVE")},
			})
		case http.MethodPost:
			atomic.AddInt32(&created, 1)
			_ = json.NewEncoder(w).Encode(wireAccount("ca_new", "INITIATED"))
		}
	}))

	_, err := m.Initiate(context.Background(), "user-1", "ac_1", nil)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsConflict(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&created))

	var sdkErr *sdkerrors.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, []string{"ca_existing"}, sdkErr.Metadata["existingAccountIds"])
}

func TestInitiateAllowMultiple(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{
				Items: []client.ConnectedAccount{wireAccount("ca_existing", "ACTIVE")},
			})
		case http.MethodPost:
			acc := wireAccount("ca_new", "INITIATED")
			acc.State = &client.ConnectionState{Val: map[string]any{"redirectUrl": "https://auth.example.com/grant"}}
			_ = json.NewEncoder(w).Encode(acc)
		}
	}))

	req, err := m.Initiate(context.Background(), "user-1", "ac_1", &InitiateOptions{AllowMultiple: true})
	require.NoError(t, err)
	assert.Equal(t, "ca_new", req.ID)
	assert.Equal(t, StatusInitiated, req.Status)
	assert.Equal(t, "https://auth.example.com/grant", req.RedirectURL)
}

func TestInitiateFreshUser(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{})
		case http.MethodPost:
			var body client.ConnectedAccountCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ac_1", body.AuthConfig.ID)
			assert.Equal(t, "user-1", body.Connection.UserID)
			assert.Equal(t, "https://app.example.com/callback", body.Connection.CallbackURL)
			_ = json.NewEncoder(w).Encode(wireAccount("ca_new", "INITIATED"))
		}
	}))

	req, err := m.Initiate(context.Background(), "user-1", "ac_1", &InitiateOptions{
		CallbackURL: "https://app.example.com/callback",
	})
	require.NoError(t, err)
	assert.Equal(t, "ca_new", req.ID)
	assert.Empty(t, req.RedirectURL)
}

func TestInitiateValidatesInput(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := m.Initiate(context.Background(), "", "ac_1", nil)
	assert.True(t, sdkerrors.IsValidation(err))
	_, err = m.Initiate(context.Background(), "user-1", "", nil)
	assert.True(t, sdkerrors.IsValidation(err))
}

func TestEnableDisable(t *testing.T) {
	var lastBody client.ConnectedAccountUpdateStatusRequest
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastBody))
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "ACTIVE"))
	}))

	_, err := m.Enable(context.Background(), "ca_1")
	require.NoError(t, err)
	assert.True(t, lastBody.Enabled)

	_, err = m.Disable(context.Background(), "ca_1")
	require.NoError(t, err)
	assert.False(t, lastBody.Enabled)
}

func TestGetNotFound(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := m.Get(context.Background(), "ca_missing")
	require.Error(t, err)
	assert.True(t, sdkerrors.IsNotFound(err))

	var sdkErr *sdkerrors.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, "ca_missing", sdkErr.Metadata["id"])
}

func TestRefresh(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/connected_accounts/ca_1/refresh", r.URL.Path)
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "ACTIVE"))
	}))

	acc, err := m.Refresh(context.Background(), "ca_1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, acc.Status)
}

func TestWaitForConnectionStandalone(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireAccount("ca_1", "ACTIVE"))
	}))

	acc, err := m.WaitForConnection(context.Background(), "ca_1", time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, acc.Status)
}

package composio

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/connectedaccounts"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

func TestAuthorizeWithExistingAuthConfig(t *testing.T) {
	var accountCreates int32
	c := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/auth_configs":
			assert.Equal(t, "github", r.URL.Query().Get("toolkit_slug"))
			_ = json.NewEncoder(w).Encode(client.AuthConfigList{Items: []client.AuthConfig{
				{ID: "ac_disabled", IsDisabled: true},
				{ID: "ac_1"},
			}})
		case r.URL.Path == "/api/v3/connected_accounts" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{})
		case r.URL.Path == "/api/v3/connected_accounts" && r.Method == http.MethodPost:
			atomic.AddInt32(&accountCreates, 1)
			var body client.ConnectedAccountCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ac_1", body.AuthConfig.ID, "first enabled auth config wins")
			_ = json.NewEncoder(w).Encode(client.ConnectedAccount{
				ID: "ca_1", Status: "INITIATED",
				State: &client.ConnectionState{Val: map[string]any{"redirectUrl": "https://github.com/login"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	req, err := c.Toolkits.Authorize(context.Background(), "user-1", "github")
	require.NoError(t, err)
	assert.Equal(t, "ca_1", req.ID)
	assert.Equal(t, connectedaccounts.StatusInitiated, req.Status)
	assert.Equal(t, "https://github.com/login", req.RedirectURL)
	assert.Equal(t, int32(1), atomic.LoadInt32(&accountCreates))
}

func TestAuthorizeCreatesManagedAuthConfig(t *testing.T) {
	c := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/auth_configs" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.AuthConfigList{})
		case r.URL.Path == "/api/v3/toolkits/github":
			_ = json.NewEncoder(w).Encode(client.Toolkit{
				Slug:                       "github",
				ComposioManagedAuthSchemes: []string{"OAUTH2"},
			})
		case r.URL.Path == "/api/v3/auth_configs" && r.Method == http.MethodPost:
			var body client.AuthConfigCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "github", body.Toolkit.Slug)
			require.NotNil(t, body.AuthConfig)
			assert.Equal(t, "use_composio_managed_auth", body.AuthConfig.Type)
			assert.Equal(t, "OAUTH2", body.AuthConfig.AuthScheme)
			_ = json.NewEncoder(w).Encode(client.AuthConfig{ID: "ac_new"})
		case r.URL.Path == "/api/v3/connected_accounts" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccountList{})
		case r.URL.Path == "/api/v3/connected_accounts" && r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(client.ConnectedAccount{ID: "ca_2", Status: "INITIATED"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	req, err := c.Toolkits.Authorize(context.Background(), "user-1", "github")
	require.NoError(t, err)
	assert.Equal(t, "ca_2", req.ID)
}

func TestAuthorizeNoAuthConfigNoManagedSchemes(t *testing.T) {
	var accountCreates int32
	c := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/auth_configs":
			_ = json.NewEncoder(w).Encode(client.AuthConfigList{})
		case r.URL.Path == "/api/v3/toolkits/github":
			_ = json.NewEncoder(w).Encode(client.Toolkit{Slug: "github"})
		case r.URL.Path == "/api/v3/connected_accounts" && r.Method == http.MethodPost:
			atomic.AddInt32(&accountCreates, 1)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := c.Toolkits.Authorize(context.Background(), "user-1", "github")
	require.Error(t, err)
	assert.True(t, sdkerrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "github", "error names the toolkit slug")
	assert.Equal(t, int32(0), atomic.LoadInt32(&accountCreates), "no account creation attempted")
}

func TestAuthorizeValidatesInput(t *testing.T) {
	c := newFacade(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.Toolkits.Authorize(context.Background(), "", "github")
	assert.True(t, sdkerrors.IsValidation(err))

	_, err = c.Toolkits.Authorize(context.Background(), "user-1", "")
	assert.True(t, sdkerrors.IsValidation(err))
}

func TestToolkitsGetNotFound(t *testing.T) {
	c := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"no such toolkit"}}`))
	})

	_, err := c.Toolkits.Get(context.Background(), "nope")
	assert.True(t, sdkerrors.IsNotFound(err))
}

//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package composio is the SDK entry point. It wires the remote client, the
// active provider and the domain managers together:
//
//	c, err := composio.New(composio.WithAPIKey("ck_..."))
//	tools, err := c.Tools.RawList(ctx, tools.ListParams{Toolkits: []string{"github"}}, nil)
package composio

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/connectedaccounts"
	"trpc.group/trpc-go/trpc-composio-go/files"
	"trpc.group/trpc-go/trpc-composio-go/files/artifact"
	"trpc.group/trpc-go/trpc-composio-go/log"
	"trpc.group/trpc-go/trpc-composio-go/provider"
	openaiprovider "trpc.group/trpc-go/trpc-composio-go/provider/openai"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
	"trpc.group/trpc-go/trpc-composio-go/tool"
	"trpc.group/trpc-go/trpc-composio-go/toolrouter"
	"trpc.group/trpc-go/trpc-composio-go/tools"
)

const (
	envAPIKey  = "COMPOSIO_API_KEY"
	envBaseURL = "COMPOSIO_BASE_URL"
)

// Composio is the top-level SDK facade.
type Composio struct {
	// Client is the shared remote client. Read-mostly after construction.
	Client *client.Client
	// Provider shapes the tools handed out by Tools.Get and session Tools.
	Provider provider.Provider

	Tools             *tools.Registry
	ConnectedAccounts *connectedaccounts.Manager
	Toolkits          *Toolkits
	ToolRouter        *toolrouter.Manager

	opts options
}

type options struct {
	apiKey          string
	baseURL         string
	headers         map[string]string
	httpClient      *http.Client
	provider        provider.Provider
	toolkitVersions map[string]string
	autoFiles       bool
	allowTracking   bool
	store           artifact.Store
}

// Option configures the facade.
type Option func(*options)

// WithAPIKey sets the API key. Falls back to COMPOSIO_API_KEY.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL overrides the backend base URL. Falls back to
// COMPOSIO_BASE_URL, then the production default.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHeaders sets default headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) { o.headers = headers }
}

// WithHTTPClient overrides the HTTP client used for API calls and file
// transfers.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithProvider sets the active provider. Defaults to the OpenAI provider.
func WithProvider(p provider.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithToolkitVersions pins tool versions per toolkit slug.
func WithToolkitVersions(versions map[string]string) Option {
	return func(o *options) { o.toolkitVersions = versions }
}

// WithAutoUploadDownloadFiles toggles the file hydration subsystem. Enabled
// by default; disabling leaves raw file references untouched in arguments
// and results.
func WithAutoUploadDownloadFiles(enabled bool) Option {
	return func(o *options) { o.autoFiles = enabled }
}

// WithAllowTracking toggles backend-side execution tracing.
func WithAllowTracking(enabled bool) Option {
	return func(o *options) { o.allowTracking = enabled }
}

// WithArtifactStore persists downloaded tool result files to the given
// store in addition to the local temp directory.
func WithArtifactStore(s artifact.Store) Option {
	return func(o *options) { o.store = s }
}

// New constructs the facade. The API key is required, from the option or the
// environment; a .env file in the working directory is honored.
func New(opts ...Option) (*Composio, error) {
	o := options{autoFiles: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.apiKey == "" || o.baseURL == "" {
		if err := godotenv.Load(); err == nil {
			log.Debugf("loaded environment from .env")
		}
		if o.apiKey == "" {
			o.apiKey = os.Getenv(envAPIKey)
		}
		if o.baseURL == "" {
			o.baseURL = os.Getenv(envBaseURL)
		}
	}
	if o.apiKey == "" {
		return nil, sdkerrors.NewConfigurationError("no API key provided").
			WithFix("pass composio.WithAPIKey or set " + envAPIKey)
	}

	clientOpts := []client.Option{client.WithAPIKey(o.apiKey)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, client.WithBaseURL(o.baseURL))
	}
	if o.headers != nil {
		clientOpts = append(clientOpts, client.WithHeaders(o.headers))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(o.httpClient))
	}
	if o.toolkitVersions != nil {
		clientOpts = append(clientOpts, client.WithToolkitVersions(o.toolkitVersions))
	}
	cli, err := client.New(clientOpts...)
	if err != nil {
		return nil, err
	}

	if o.provider == nil {
		o.provider = openaiprovider.New()
	}
	return assemble(cli, o)
}

// assemble builds the managers around a ready client. The registry
// construction injects the execute capability into the provider; on an
// already-wired provider the injection is a no-op, keeping the first
// facade's binding.
func assemble(cli *client.Client, o options) (*Composio, error) {
	hydratorOpts := []files.Option{files.WithEnabled(o.autoFiles)}
	if o.store != nil {
		hydratorOpts = append(hydratorOpts, files.WithArtifactStore(o.store))
	}
	hydrator := files.NewHydrator(cli, hydratorOpts...)

	registry, err := tools.NewRegistry(cli, o.provider, hydrator)
	if err != nil {
		return nil, err
	}
	accounts, err := connectedaccounts.NewManager(cli)
	if err != nil {
		return nil, err
	}
	router, err := toolrouter.NewManager(cli, registry)
	if err != nil {
		return nil, err
	}

	return &Composio{
		Client:            cli,
		Provider:          o.provider,
		Tools:             registry,
		ConnectedAccounts: accounts,
		Toolkits:          &Toolkits{client: cli, accounts: accounts},
		ToolRouter:        router,
		opts:              o,
	}, nil
}

// CreateSession derives a facade whose requests carry the given extra
// headers, for example per-request tracing or tenant headers. The provider
// instance and HTTP client are shared with the parent.
func (c *Composio) CreateSession(headers map[string]string) (*Composio, error) {
	return assemble(c.Client.WithExtraHeaders(headers), c.opts)
}

// AllowTracking reports whether backend-side execution tracing is enabled.
func (c *Composio) AllowTracking() bool { return c.opts.allowTracking }

// Execute runs a tool through the registry. It is the dynamic entry point:
// modifiers may be nil, *tool.ExecuteModifiers or tool.ExecuteModifiers;
// anything else is rejected with a validation error before the pipeline
// starts. The facade's tracking setting applies when the params leave it
// unset.
func (c *Composio) Execute(ctx context.Context, slug string, params tool.ExecuteParams, modifiers any) (tool.ExecuteResponse, error) {
	coerced, err := tool.CoerceExecuteModifiers(modifiers)
	if err != nil {
		return tool.ExecuteResponse{}, err
	}
	if c.opts.allowTracking {
		params.AllowTracing = true
	}
	return c.Tools.Execute(ctx, slug, params, coerced)
}

//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package client

import (
	"trpc.group/trpc-go/trpc-composio-go/tool"
)

// Tool is the wire representation of a tool in the remote catalog.
type Tool struct {
	Slug             string       `json:"slug"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	InputParameters  *tool.Schema `json:"input_parameters,omitempty"`
	OutputParameters *tool.Schema `json:"output_parameters,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	Toolkit          *WireToolkit `json:"toolkit,omitempty"`
	Version          string       `json:"version,omitempty"`
	NoAuth           bool         `json:"no_auth,omitempty"`
	Scopes           []string     `json:"scopes,omitempty"`
}

// WireToolkit is the nested toolkit reference carried on wire tools.
type WireToolkit struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// ToolList is a page of catalog tools.
type ToolList struct {
	Items      []Tool `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	TotalPages int    `json:"total_pages,omitempty"`
}

// ToolListQuery is the query shape of the tool list endpoint.
type ToolListQuery struct {
	ToolSlugs     []string
	ToolkitSlugs  []string
	Tags          []string
	Search        string
	Scopes        []string
	AuthConfigIDs []string
	Limit         int
	Cursor        string
}

// ToolExecuteRequest is the wire request of the tool execute endpoint.
type ToolExecuteRequest struct {
	Arguments          map[string]any `json:"arguments,omitempty"`
	UserID             string         `json:"user_id,omitempty"`
	ConnectedAccountID string         `json:"connected_account_id,omitempty"`
	CustomAuthParams   map[string]any `json:"custom_auth_params,omitempty"`
	Version            string         `json:"version,omitempty"`
	AllowTracing       bool           `json:"allow_tracing,omitempty"`
	Text               string         `json:"text,omitempty"`
}

// ToolExecuteResponse is the wire response of the tool execute endpoint.
type ToolExecuteResponse struct {
	Data        map[string]any `json:"data"`
	Error       *string        `json:"error"`
	Successful  bool           `json:"successful"`
	LogID       string         `json:"log_id,omitempty"`
	SessionInfo map[string]any `json:"session_info,omitempty"`
}

// ProxyParameter is a single header or query parameter of a proxied call.
type ProxyParameter struct {
	Name string `json:"name"`
	In   string `json:"in"` // "header" or "query"
	Value string `json:"value"`
}

// ProxyRequest is the wire request of the raw HTTP proxy endpoint. The call
// is executed with the credentials of the given connected account.
type ProxyRequest struct {
	Endpoint           string           `json:"endpoint"`
	Method             string           `json:"method"`
	Body               any              `json:"body,omitempty"`
	Parameters         []ProxyParameter `json:"parameters,omitempty"`
	ConnectedAccountID string           `json:"connected_account_id,omitempty"`
}

// ProxyResponse is the wire response of the raw HTTP proxy endpoint.
type ProxyResponse struct {
	Data       any `json:"data"`
	StatusCode int `json:"status_code"`
}

// ToolInputRequest is the wire request of the argument-autofill endpoint.
type ToolInputRequest struct {
	Text         string `json:"text"`
	CustomDesc   string `json:"custom_description,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Version      string `json:"version,omitempty"`
}

// ToolInputResponse is the wire response of the argument-autofill endpoint.
type ToolInputResponse struct {
	Arguments map[string]any `json:"arguments"`
	Error     *string        `json:"error,omitempty"`
}

// ConnectedAccount is the wire representation of a connected account.
type ConnectedAccount struct {
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	AuthConfig   ConnectedAccountAuth   `json:"auth_config"`
	Toolkit      WireToolkit            `json:"toolkit"`
	UserID       string                 `json:"user_id"`
	IsDisabled   bool                   `json:"is_disabled"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
	State        *ConnectionState       `json:"state,omitempty"`
	StatusReason *string                `json:"status_reason,omitempty"`
	Params       map[string]any         `json:"params,omitempty"`
	TestRequest  map[string]any         `json:"test_request,omitempty"`
	Meta         map[string]any         `json:"meta,omitempty"`
	Data         map[string]any         `json:"data,omitempty"`
	Labels       []string               `json:"labels,omitempty"`
}

// ConnectedAccountAuth is the nested auth config of a wire connected account.
type ConnectedAccountAuth struct {
	ID                string `json:"id"`
	IsComposioManaged bool   `json:"is_composio_managed"`
	IsDisabled        bool   `json:"is_disabled"`
}

// ConnectionState is the opaque auth material of a connection attempt. Val
// commonly carries a "redirectUrl" entry while the connection is INITIATED.
type ConnectionState struct {
	AuthScheme string         `json:"auth_scheme,omitempty"`
	Val        map[string]any `json:"val,omitempty"`
}

// ConnectedAccountList is a page of connected accounts.
type ConnectedAccountList struct {
	Items      []ConnectedAccount `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
	TotalPages int                `json:"total_pages,omitempty"`
}

// ConnectedAccountListQuery is the query shape of the connected account list
// endpoint.
type ConnectedAccountListQuery struct {
	UserIDs       []string
	AuthConfigIDs []string
	ToolkitSlugs  []string
	Statuses      []string
	Labels        []string
	Limit         int
	Cursor        string
}

// ConnectedAccountCreateRequest is the wire request of the connected account
// create endpoint.
type ConnectedAccountCreateRequest struct {
	AuthConfig ConnectedAccountCreateAuth `json:"auth_config"`
	Connection ConnectedAccountConnection `json:"connection"`
}

// ConnectedAccountCreateAuth selects the auth config for a new account.
type ConnectedAccountCreateAuth struct {
	ID string `json:"id"`
}

// ConnectedAccountConnection carries the user binding of a new account.
type ConnectedAccountConnection struct {
	UserID      string         `json:"user_id"`
	CallbackURL string         `json:"callback_url,omitempty"`
	State       map[string]any `json:"state,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// ConnectedAccountUpdateStatusRequest toggles an account on or off.
type ConnectedAccountUpdateStatusRequest struct {
	Enabled bool `json:"enabled"`
}

// Toolkit is the wire representation of a toolkit.
type Toolkit struct {
	Slug                       string              `json:"slug"`
	Name                       string              `json:"name"`
	Meta                       ToolkitMeta         `json:"meta"`
	IsLocalToolkit             bool                `json:"is_local_toolkit,omitempty"`
	AuthConfigDetails          []ToolkitAuthDetail `json:"auth_config_details,omitempty"`
	ComposioManagedAuthSchemes []string            `json:"composio_managed_auth_schemes,omitempty"`
}

// ToolkitMeta is the descriptive metadata of a toolkit.
type ToolkitMeta struct {
	Description string            `json:"description,omitempty"`
	Logo        string            `json:"logo,omitempty"`
	ToolsCount  int               `json:"tools_count,omitempty"`
	Categories  []ToolkitCategory `json:"categories,omitempty"`
}

// ToolkitAuthDetail describes one auth scheme a toolkit supports.
type ToolkitAuthDetail struct {
	Name   string         `json:"name"`
	Mode   string         `json:"mode"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ToolkitCategory is a toolkit category entry.
type ToolkitCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToolkitList is a page of toolkits.
type ToolkitList struct {
	Items      []Toolkit `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ToolkitListQuery is the query shape of the toolkit list endpoint.
type ToolkitListQuery struct {
	Category string
	IsLocal  *bool
	Limit    int
	Cursor   string
}

// ToolkitCategoryList is the response of the category listing endpoint.
type ToolkitCategoryList struct {
	Items []ToolkitCategory `json:"items"`
}

// RouterSessionCreateRequest is the wire request of the session create
// endpoint.
type RouterSessionCreateRequest struct {
	UserID                    string                     `json:"user_id"`
	Toolkits                  []RouterToolkitConfig      `json:"toolkits,omitempty"`
	Tags                      []string                   `json:"tags,omitempty"`
	ManuallyManageConnections bool                       `json:"manually_manage_connections,omitempty"`
	Workbench                 *RouterWorkbenchConfig     `json:"workbench,omitempty"`
}

// RouterToolkitConfig binds one toolkit into a router session.
type RouterToolkitConfig struct {
	Slug               string `json:"slug"`
	Enabled            bool   `json:"enabled"`
	AuthConfigID       string `json:"auth_config_id,omitempty"`
	ConnectedAccountID string `json:"connected_account_id,omitempty"`
}

// RouterWorkbenchConfig sets the execution thresholds of the session
// workbench.
type RouterWorkbenchConfig struct {
	SyncExecutionTimeout int `json:"sync_execution_timeout,omitempty"`
	MaxConcurrency       int `json:"max_concurrency,omitempty"`
}

// RouterMCPServer describes the MCP endpoint a router session exposes.
type RouterMCPServer struct {
	Type    string            `json:"type"` // "http" or "sse"
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// RouterSession is the wire representation of a router session.
type RouterSession struct {
	SessionID string           `json:"session_id"`
	MCPServer *RouterMCPServer `json:"mcp_server,omitempty"`
	Toolkits  []string         `json:"toolkits,omitempty"`
	Tools     []string         `json:"tools,omitempty"`
}

// RouterLinkRequest is the wire request of the per-toolkit link endpoint.
type RouterLinkRequest struct {
	ToolkitSlug string `json:"toolkit_slug"`
	CallbackURL string `json:"callback_url,omitempty"`
}

// RouterLinkResponse is the wire response of the per-toolkit link endpoint.
type RouterLinkResponse struct {
	ConnectedAccountID string `json:"connected_account_id"`
	Status             string `json:"status"`
	RedirectURL        string `json:"redirect_url,omitempty"`
}

// RouterToolkitStatus is the per-toolkit connection state within a session.
type RouterToolkitStatus struct {
	Slug               string `json:"slug"`
	Connected          bool   `json:"connected"`
	Status             string `json:"status,omitempty"`
	ConnectedAccountID string `json:"connected_account_id,omitempty"`
	AuthConfigID       string `json:"auth_config_id,omitempty"`
}

// RouterToolkitStatusList is a page of per-toolkit session states.
type RouterToolkitStatusList struct {
	Items      []RouterToolkitStatus `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// FileUploadRequest asks the backend for a presigned upload slot.
type FileUploadRequest struct {
	ToolSlug    string `json:"tool_slug"`
	ToolkitSlug string `json:"toolkit_slug"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mimetype"`
	MD5         string `json:"md5"`
}

// FileUploadResponse carries the presigned upload slot. When the backend has
// already seen the content (same md5), ExistingURL is set and no upload is
// needed.
type FileUploadResponse struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	NewURL      string `json:"new_presigned_url,omitempty"`
	ExistingURL string `json:"existing_url,omitempty"`
}

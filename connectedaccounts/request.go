//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

package connectedaccounts

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-composio-go/client"
	"trpc.group/trpc-go/trpc-composio-go/sdkerrors"
)

const (
	// DefaultWaitTimeout bounds WaitForConnection when no timeout is given.
	DefaultWaitTimeout = 60 * time.Second
	// pollInterval is the fixed wait between status checks. Connection
	// establishment is driven by an external OAuth redirect outside SDK
	// control; a fixed 1s interval bounds API load while keeping latency
	// acceptable for interactive flows.
	pollInterval = time.Second
)

var tracer = otel.Tracer("trpc.group/trpc-go/trpc-composio-go/connectedaccounts")

// ConnectionRequest is a short-lived view of one connection attempt. It is
// not persisted; it can be reconstructed from an account id at any time (see
// Manager.WaitForConnection).
type ConnectionRequest struct {
	// ID is the connected account id of the attempt.
	ID string `json:"id"`
	// Status is the status last observed.
	Status Status `json:"status"`
	// RedirectURL is the OAuth URL the user must visit to complete the
	// connection, when the auth scheme requires one.
	RedirectURL string `json:"redirectUrl,omitempty"`

	client *client.Client
}

// NewConnectionRequest builds a connection attempt view around an existing
// account id. Other subsystems that trigger connections remotely (the tool
// router's link operation) use it to hand callers the same waiting
// machinery.
func NewConnectionRequest(c *client.Client, id string, status Status, redirectURL string) *ConnectionRequest {
	return &ConnectionRequest{ID: id, Status: status, RedirectURL: redirectURL, client: c}
}

// WaitForConnection polls the account until it becomes ACTIVE or the timeout
// elapses. A non-positive timeout means DefaultWaitTimeout.
//
// The current status is checked once before the timed poll loop starts, so
// an already-ACTIVE account resolves with a single retrieve call and no
// delay; that immediate check does not count against the timeout budget.
// The timeout is a soft upper bound measured from the start of the loop.
func (r *ConnectionRequest) WaitForConnection(ctx context.Context, timeout time.Duration) (*ConnectedAccount, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	ctx, span := tracer.Start(ctx, "connected_account.wait",
		oteltrace.WithAttributes(attribute.String("connected_account.id", r.ID)))
	defer span.End()

	acc, err := r.check(ctx)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		return acc, nil
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}

		acc, err = r.check(ctx)
		if err != nil {
			return nil, err
		}
		if acc != nil {
			return acc, nil
		}
	}

	return nil, sdkerrors.NewTimeoutError(
		"connected account %s did not become active within %s", r.ID, timeout,
	).
		WithMetadata("connectedAccountId", r.ID).
		WithMetadata("timeout", timeout.String()).
		WithFix("increase the timeout or verify the user completed the authorization flow")
}

// check fetches the account once and updates the local status. It returns
// (account, nil) on success-terminal, (nil, err) on failure, and (nil, nil)
// when polling should continue.
func (r *ConnectionRequest) check(ctx context.Context) (*ConnectedAccount, error) {
	w, err := r.client.ConnectedAccounts.Retrieve(ctx, r.ID)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, sdkerrors.NewNotFoundError("connected account", r.ID).WithCause(err)
		}
		// Non-domain errors propagate unchanged; no retry on network error.
		return nil, err
	}

	acc := fromWire(w)
	r.Status = acc.Status

	switch acc.Status {
	case StatusActive:
		return &acc, nil
	case StatusFailed, StatusExpired:
		failure := sdkerrors.New(sdkerrors.CodeConnectionFailed,
			"connection %s reached terminal status %s", r.ID, acc.Status).
			WithMetadata("connectedAccountId", r.ID).
			WithMetadata("status", string(acc.Status))
		if acc.StatusReason != "" {
			failure = failure.WithMetadata("statusReason", acc.StatusReason)
		}
		return nil, failure
	default:
		return nil, nil
	}
}

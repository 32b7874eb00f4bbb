//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package cos provides a Tencent COS backed artifact store.
package cos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	cossdk "github.com/tencentyun/cos-go-sdk-v5"

	"trpc.group/trpc-go/trpc-composio-go/files/artifact"
)

const defaultTimeout = 30 * time.Second

// objectClient is the slice of the COS SDK the store depends on. Narrowing
// the dependency keeps the store testable without a live bucket.
type objectClient interface {
	Put(ctx context.Context, name string, content io.Reader, mimeType string) error
	Get(ctx context.Context, name string) (io.ReadCloser, http.Header, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

type sdkClient struct {
	*cossdk.Client
}

func (c *sdkClient) Put(ctx context.Context, name string, content io.Reader, mimeType string) error {
	opt := &cossdk.ObjectPutOptions{
		ObjectPutHeaderOptions: &cossdk.ObjectPutHeaderOptions{ContentType: mimeType},
	}
	_, err := c.Client.Object.Put(ctx, name, content, opt)
	return err
}

func (c *sdkClient) Get(ctx context.Context, name string) (io.ReadCloser, http.Header, error) {
	resp, err := c.Client.Object.Get(ctx, name, nil)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

func (c *sdkClient) Delete(ctx context.Context, name string) error {
	_, err := c.Client.Object.Delete(ctx, name)
	return err
}

func (c *sdkClient) List(ctx context.Context, prefix string) ([]string, error) {
	result, _, err := c.Client.Bucket.Get(ctx, &cossdk.BucketGetOptions{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Option configures the COS store.
type Option func(*options)

type options struct {
	client     objectClient
	httpClient *http.Client
	timeout    time.Duration
	secretID   string
	secretKey  string
}

// WithClient sets the COS client directly. Takes precedence over the other
// options.
func WithClient(client *cossdk.Client) Option {
	return func(o *options) { o.client = &sdkClient{Client: client} }
}

// WithHTTPClient sets the HTTP client used for COS requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithSecretID sets the COS secret id. Defaults to the COS_SECRETID
// environment variable.
func WithSecretID(secretID string) Option {
	return func(o *options) { o.secretID = secretID }
}

// WithSecretKey sets the COS secret key. Defaults to the COS_SECRETKEY
// environment variable.
func WithSecretKey(secretKey string) Option {
	return func(o *options) { o.secretKey = secretKey }
}

// Store is a COS-backed implementation of artifact.Store.
type Store struct {
	client objectClient
}

// New creates a COS artifact store for the given bucket URL.
func New(bucketURL string, opts ...Option) (*Store, error) {
	o := &options{
		timeout:   defaultTimeout,
		secretID:  os.Getenv("COS_SECRETID"),
		secretKey: os.Getenv("COS_SECRETKEY"),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.client != nil {
		return &Store{client: o.client}, nil
	}

	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bucket url %q: %w", bucketURL, err)
	}
	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{
			Timeout: o.timeout,
			Transport: &cossdk.AuthorizationTransport{
				SecretID:  o.secretID,
				SecretKey: o.secretKey,
			},
		}
	}
	return &Store{
		client: &sdkClient{Client: cossdk.NewClient(&cossdk.BaseURL{BucketURL: u}, hc)},
	}, nil
}

// Save stores an artifact under key.
func (s *Store) Save(ctx context.Context, key string, art *artifact.Artifact) error {
	return s.client.Put(ctx, key, bytes.NewReader(art.Data), art.MimeType)
}

// Load returns the artifact under key, or nil when absent.
func (s *Store) Load(ctx context.Context, key string) (*artifact.Artifact, error) {
	body, header, err := s.client.Get(ctx, key)
	if err != nil {
		if cossdk.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return &artifact.Artifact{
		Data:     data,
		MimeType: header.Get("Content-Type"),
		Name:     key,
	}, nil
}

// Delete removes the artifact under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Delete(ctx, key)
}

// List returns the keys under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.client.List(ctx, prefix)
}

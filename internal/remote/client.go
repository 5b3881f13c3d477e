// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package remote is the HTTP client for the upstream content service. The
// service speaks plain JSON CRUD per entity kind and wraps every response
// in a {success, data, message} envelope; a success=false body or a non-2xx
// status is surfaced as a *RemoteError carrying the server's message.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds every call to the content service.
const defaultTimeout = 30 * time.Second

// Client performs envelope-wrapped JSON requests against the content
// service. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a content service client. token may be empty when the
// service does not require authentication.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// RemoteError is a failure reported by the content service itself, as
// opposed to a transport-level error. Message is the server's own text and
// is safe to show to admin users.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("content service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("content service error (status %d)", e.StatusCode)
}

// envelope is the response wrapper used by every content service endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// do performs one request. payload is marshalled as the JSON body when
// non-nil; out, when non-nil, receives the envelope's data field.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("remote marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote read body: %w", err)
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(respBody, &env); unmarshalErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &RemoteError{StatusCode: resp.StatusCode, Message: trimBody(respBody)}
		}
		return fmt.Errorf("remote unmarshal: %w", unmarshalErr)
	}

	// A non-2xx status and a success=false body both mean the operation did
	// not happen; neither is ever treated as a partial success.
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &RemoteError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if len(env.Data) == 0 {
			return &RemoteError{StatusCode: resp.StatusCode, Message: "response is missing the data payload"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("remote decode data: %w", err)
		}
	}
	return nil
}

// trimBody keeps error messages from non-JSON responses readable.
func trimBody(b []byte) string {
	const max = 200
	s := string(b)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// client is a thin HTTP client for the minibank API. Read-only requests
// are retried with exponential backoff on transport errors; mutating
// requests are sent once, since the server already supports
// Idempotency-Key replay for deliberate retries.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Status  int
	Error_  string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Error_, e.Message)
	}
	return e.Error_
}

func (c *client) get(path string, headers map[string]string, out any) error {
	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err // transport error, retryable
		}
		defer resp.Body.Close()

		if err := decodeResponse(resp, out); err != nil {
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status < 500 {
				// Client and auth errors won't heal on retry.
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(operation, b)
}

func (c *client) do(method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &apiError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Error_ == "" {
			apiErr.Error_ = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

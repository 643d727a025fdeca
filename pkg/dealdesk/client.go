// Package dealdesk provides a client for the deal desk document analyzer API.
package dealdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the analyzer backend operations.
type Client interface {
	// Status fetches the pipeline status of one document.
	Status(ctx context.Context, docID int64) (*StatusResponse, error)
	// Analysis fetches the combined OCR + extraction view of one document.
	Analysis(ctx context.Context, docID int64) (*AnalysisResponse, error)
	// Documents lists all documents, newest first.
	Documents(ctx context.Context) ([]DocumentSummary, error)
	// Dashboard fetches aggregate statistics.
	Dashboard(ctx context.Context) (*DashboardResponse, error)
	// Upload submits files for OCR and extraction.
	Upload(ctx context.Context, paths []string) (*UploadResponse, error)
	// Delete removes a document and its derived artifacts.
	Delete(ctx context.Context, docID int64) error
	// ReExtract re-runs extraction on a document with completed OCR.
	ReExtract(ctx context.Context, docID int64) error
	// Accuracy compares a completed extraction against ground truth.
	Accuracy(ctx context.Context, docID int64) (*AccuracyResponse, error)
	// GetSettings fetches backend settings.
	GetSettings(ctx context.Context) (Settings, error)
	// UpdateSettings overwrites backend settings keys.
	UpdateSettings(ctx context.Context, settings Settings) error
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the analyzer backend at baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a request with exponential backoff on transient failures
// (429, 500, 502, 503). Returns the response body and status code, or the
// last error after exhausting retries. Requests with bodies are not retried.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	attempts := maxAttempts
	if req.Body != nil {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < attempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "dealdesk: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < attempts {
			lastErr = eris.Errorf("dealdesk: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "dealdesk: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return eris.Wrapf(err, "dealdesk: GET %s", path)
	}
	if statusCode != http.StatusOK {
		return eris.Errorf("dealdesk: GET %s: unexpected status %d: %s", path, statusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "dealdesk: decode %s", path)
	}
	return nil
}

func (c *httpClient) Status(ctx context.Context, docID int64) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/documents/%d/status", docID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Analysis(ctx context.Context, docID int64) (*AnalysisResponse, error) {
	var out AnalysisResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/documents/%d/analysis", docID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Documents(ctx context.Context) ([]DocumentSummary, error) {
	var out []DocumentSummary
	if err := c.getJSON(ctx, "/api/documents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := c.getJSON(ctx, "/api/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Upload(ctx context.Context, paths []string) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dealdesk: open %s", path)
		}
		part, err := mw.CreateFormFile("files", filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, eris.Wrap(err, "dealdesk: create form file")
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "dealdesk: read %s", path)
		}
		f.Close()
	}
	if err := mw.Close(); err != nil {
		return nil, eris.Wrap(err, "dealdesk: close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, eris.Wrap(err, "dealdesk: create upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "dealdesk: upload")
	}
	if statusCode != http.StatusCreated {
		return nil, eris.Errorf("dealdesk: upload: unexpected status %d: %s", statusCode, string(body))
	}

	var out UploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "dealdesk: decode upload response")
	}
	return &out, nil
}

func (c *httpClient) Delete(ctx context.Context, docID int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/documents/%d", c.baseURL, docID), nil)
	if err != nil {
		return eris.Wrap(err, "dealdesk: create delete request")
	}

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return eris.Wrapf(err, "dealdesk: delete document %d", docID)
	}
	if statusCode != http.StatusOK {
		return eris.Errorf("dealdesk: delete document %d: unexpected status %d: %s", docID, statusCode, string(body))
	}
	return nil
}

func (c *httpClient) ReExtract(ctx context.Context, docID int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/documents/%d/re-extract", c.baseURL, docID), nil)
	if err != nil {
		return eris.Wrap(err, "dealdesk: create re-extract request")
	}

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return eris.Wrapf(err, "dealdesk: re-extract document %d", docID)
	}
	if statusCode != http.StatusAccepted {
		return eris.Errorf("dealdesk: re-extract document %d: unexpected status %d: %s", docID, statusCode, string(body))
	}
	return nil
}

func (c *httpClient) Accuracy(ctx context.Context, docID int64) (*AccuracyResponse, error) {
	var out AccuracyResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/documents/%d/accuracy", docID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) GetSettings(ctx context.Context) (Settings, error) {
	var out Settings
	if err := c.getJSON(ctx, "/api/settings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) UpdateSettings(ctx context.Context, settings Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return eris.Wrap(err, "dealdesk: marshal settings")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/settings", bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "dealdesk: create settings request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return eris.Wrap(err, "dealdesk: update settings")
	}
	if statusCode != http.StatusOK {
		return eris.Errorf("dealdesk: update settings: unexpected status %d: %s", statusCode, string(body))
	}
	return nil
}

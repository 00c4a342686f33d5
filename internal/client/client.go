// Package client is a small façade over the HTTP API for edge devices.
// It covers the calls a toolbox controller makes: look up the technician
// behind a scanned card, report an access event and upload a condition
// photo.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/monitool/monitool/internal/model"
)

// APIError is returned for any non-2xx response.  Message carries the
// server's error field when the body could be decoded.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to one server with one API key.  It is safe for concurrent
// use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a Client for baseURL, e.g. "http://monitool.local:8080".
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// TechnicianByNFC resolves a scanned card UID to a technician record.
func (c *Client) TechnicianByNFC(ctx context.Context, nfcUID string) (model.Technician, error) {
	var t model.Technician
	path := "/api/v1/technicians/by-nfc/" + url.PathEscape(nfcUID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &t); err != nil {
		return model.Technician{}, err
	}
	return t, nil
}

// AccessEvent is the payload for SubmitAccessEvent.  The server assigns
// the timestamp and derives the missing count.
type AccessEvent struct {
	ToolboxID        string  `json:"toolbox_id"`
	TechnicianID     string  `json:"technician_id"`
	ActionType       string  `json:"action_type"`
	ItemsBefore      *int    `json:"items_before,omitempty"`
	ItemsAfter       *int    `json:"items_after,omitempty"`
	MissingItemsList *string `json:"missing_items_list,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// SubmitAccessEvent reports one open/close/denied event and returns the
// stored record.
func (c *Client) SubmitAccessEvent(ctx context.Context, ev AccessEvent) (model.AccessLog, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return model.AccessLog{}, err
	}
	var rec model.AccessLog
	if err := c.do(ctx, http.MethodPost, "/api/v1/access-logs", bytes.NewReader(body), "application/json", &rec); err != nil {
		return model.AccessLog{}, err
	}
	return rec, nil
}

// UploadImage sends the file at path as a multipart upload and returns
// the stored image record.
func (c *Client) UploadImage(ctx context.Context, filePath, subfolder, toolboxID string) (model.Image, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return model.Image{}, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return model.Image{}, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return model.Image{}, err
	}
	if err := mw.WriteField("subfolder", subfolder); err != nil {
		return model.Image{}, err
	}
	if err := mw.WriteField("toolbox_id", toolboxID); err != nil {
		return model.Image{}, err
	}
	if err := mw.Close(); err != nil {
		return model.Image{}, err
	}

	var im model.Image
	if err := c.do(ctx, http.MethodPost, "/api/v1/images/upload", &buf, mw.FormDataContentType(), &im); err != nil {
		return model.Image{}, err
	}
	return im, nil
}

// do performs one request and decodes a JSON response into out when out
// is non-nil.  There is no implicit retry; callers that want one wrap
// the call in Retry.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

// Retry runs fn up to attempts times, sleeping backoff between tries.
// It stops early when fn succeeds or ctx is done.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

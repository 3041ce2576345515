// Package supabase talks to the hosted shipments table through the PostgREST
// API that Supabase exposes under /rest/v1.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/shipment"

	"github.com/rs/zerolog"
)

const restPath = "/rest/v1/"

// APIError is a non-2xx answer from PostgREST.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase: status %d", e.Status)
	}
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL *url.URL
	apiKey  string
	table   string
	http    *http.Client
}

func NewClient(baseURL, apiKey, table string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("supabase: invalid url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("supabase: invalid url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, apiKey: apiKey, table: table, http: httpClient}, nil
}

// InsertShipment stores record and returns the tracking id of the stored row.
// If the row comes back without one, the id that was sent is returned.
func (c *Client) InsertShipment(ctx context.Context, record models.ShipmentRecord) (string, error) {
	body, err := json.Marshal([]models.ShipmentRecord{record})
	if err != nil {
		return "", fmt.Errorf("supabase: encode shipment: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	var rows []models.ShipmentRecord
	if err := c.do(req, &rows); err != nil {
		return "", fmt.Errorf("supabase: insert shipment: %w", err)
	}

	if len(rows) == 0 || rows[0].TrackingID == "" {
		return record.TrackingID, nil
	}
	return rows[0].TrackingID, nil
}

// GetShipment looks a shipment up by tracking id.
func (c *Client) GetShipment(ctx context.Context, trackingID string) (*models.ShipmentRecord, error) {
	q := url.Values{}
	q.Set("tracking_id", "eq."+trackingID)
	q.Set("select", "*")
	q.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []models.ShipmentRecord
	if err := c.do(req, &rows); err != nil {
		return nil, fmt.Errorf("supabase: get shipment: %w", err)
	}
	if len(rows) == 0 {
		return nil, shipment.ErrNotFound
	}

	return &rows[0], nil
}

// Ping checks that the REST endpoint answers with the configured key.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "tracking_id")
	q.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, q.Encode(), nil)
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("supabase: ping: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, rawQuery string, body io.Reader) (*http.Request, error) {
	rel := &url.URL{Path: restPath + c.table, RawQuery: rawQuery}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if len(raw) > 0 && json.Unmarshal(raw, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		zerolog.Ctx(req.Context()).Debug().
			Int("status", resp.StatusCode).
			Str("code", apiErr.Code).
			Str("path", req.URL.Path).
			Msg("supabase request rejected")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

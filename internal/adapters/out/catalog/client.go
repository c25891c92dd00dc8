// Package catalog implements the availability gate against the catalog
// service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ordering/internal/core/ports"
)

// Client checks item availability against the catalog service.
//
// An item identifier may refer to a standalone dish or to a menu; the
// catalog exposes them on different routes, so the client probes the dish
// route first and falls back to the menu route on 404. Every failure mode
// (unreachable catalog, unexpected status, malformed body) reports the item
// as unavailable: an order must never be accepted on unknown availability.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an availability client for the catalog at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// availabilityEnvelope matches the catalog's response shape for both dish
// and menu lookups.
type availabilityEnvelope struct {
	Data struct {
		Availability bool `json:"availability"`
	} `json:"data"`
}

// CheckAvailability reports whether every requested item is currently
// available. The boolean is false whenever availability could not be
// positively confirmed.
func (c *Client) CheckAvailability(ctx context.Context, requests []ports.AvailabilityRequest) (bool, error) {
	for _, request := range requests {
		available, err := c.checkItem(ctx, request.ItemID)
		if err != nil {
			c.logger.Warn("availability check failed",
				"item_id", request.ItemID,
				"error", err,
			)
			return false, err
		}
		if !available {
			return false, nil
		}
	}

	return true, nil
}

func (c *Client) checkItem(ctx context.Context, itemID string) (bool, error) {
	available, status, err := c.probe(ctx, "dish", itemID)
	if err != nil {
		return false, err
	}

	if status == http.StatusNotFound {
		available, status, err = c.probe(ctx, "menu", itemID)
		if err != nil {
			return false, err
		}
	}

	if status == http.StatusNotFound {
		return false, nil
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("catalog returned status %d for item %s", status, itemID)
	}

	return available, nil
}

// probe performs one lookup. The availability boolean is only meaningful
// when the returned status is 200.
func (c *Client) probe(ctx context.Context, kind, itemID string) (bool, int, error) {
	lookupURL := fmt.Sprintf("%s/%s/%s", c.baseURL, kind, url.PathEscape(itemID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return false, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, resp.StatusCode, nil
	}

	var envelope availabilityEnvelope
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, 0, fmt.Errorf("decoding catalog response for item %s: %w", itemID, err)
	}

	return envelope.Data.Availability, resp.StatusCode, nil
}
